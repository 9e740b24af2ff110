// Package autocomplete turns keystrokes into debounced, cancellation-safe
// place searches and resolves a chosen suggestion into a saved marker.
package autocomplete

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"places-proxy/internal/gateway"
	"places-proxy/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	DefaultDebounce       = 650 * time.Millisecond
	DefaultRequestTimeout = 10 * time.Second
	MinQueryLength        = 3
)

var (
	ErrEmptyQuery = errors.New("autocomplete: query is empty")
	ErrNoResults  = errors.New("autocomplete: no matching places")
	// ErrSaveMarker wraps a marker store failure that followed a successful resolve.
	ErrSaveMarker = errors.New("autocomplete: save marker")
)

// Health is the advisory reachability of the places proxy.
type Health string

const (
	HealthChecking Health = "checking"
	HealthOK       Health = "ok"
	HealthError    Health = "error"
)

// Gateway is the subset of the places proxy the coordinator needs.
type Gateway interface {
	Configured() bool
	HealthCheck(ctx context.Context) bool
	SearchPlaces(ctx context.Context, query, sessionToken string) ([]models.Suggestion, error)
	ResolvePlace(ctx context.Context, placeID, sessionToken string) (*models.LatLng, error)
}

// MarkerStore receives one marker per successful resolve.
type MarkerStore interface {
	AddMarker(ctx context.Context, lat, lng float64, label string) (*models.Marker, error)
}

// State is a copy of the coordinator's observable state.
type State struct {
	Query        string
	Suggestions  []models.Suggestion
	IsSuggesting bool
	SessionToken string
	Health       Health
}

type Option func(*Coordinator)

func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

// WithRequestTimeout bounds each search, resolve and health request.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) { c.sched = s }
}

func WithTokenGenerator(f func() string) Option {
	return func(c *Coordinator) { c.newToken = f }
}

// WithOnChange registers a callback invoked, outside the lock, after every state change.
func WithOnChange(f func(State)) Option {
	return func(c *Coordinator) { c.onChange = f }
}

// Coordinator owns the debounce timer, the in-flight search, the session
// token and the current suggestion list for one input field.
//
// Every search captures the sequence number current when it was armed and its
// result is applied only if that number is still current. Cancelling the
// request context is best effort; the sequence check is what keeps stale
// responses out.
type Coordinator struct {
	gateway  Gateway
	markers  MarkerStore
	sched    Scheduler
	debounce time.Duration
	timeout  time.Duration
	newToken func() string
	onChange func(State)

	mu     sync.Mutex
	seq    uint64
	timer  Timer
	cancel context.CancelFunc
	closed bool
	state  State

	// pending holds committed snapshots not yet handed to onChange, in
	// commit order. notifying is set while one goroutine drains it.
	pending   []State
	notifying bool
}

// New creates a Coordinator. markers may be nil when resolved places are not saved.
func New(gw Gateway, markers MarkerStore, opts ...Option) *Coordinator {
	c := &Coordinator{
		gateway:  gw,
		markers:  markers,
		sched:    realScheduler{},
		debounce: DefaultDebounce,
		timeout:  DefaultRequestTimeout,
		newToken: uuid.NewString,
		state:    State{Health: HealthChecking},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetQuery records a new input value. It supersedes any pending timer or
// in-flight search and, for a query of at least MinQueryLength characters,
// arms a fresh debounce timer. Clearing the input ends the session.
func (c *Coordinator) SetQuery(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.state.Query = query
	c.supersedeLocked()

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		c.state.SessionToken = ""
	}

	if !c.gateway.Configured() || utf8.RuneCountInString(trimmed) < MinQueryLength {
		c.state.Suggestions = nil
		c.commitLocked()
		return
	}

	seq := c.seq
	c.timer = c.sched.AfterFunc(c.debounce, func() { c.search(seq, trimmed) })
	c.commitLocked()
}

// search runs when the debounce timer for seq fires.
func (c *Coordinator) search(seq uint64, query string) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	if c.state.SessionToken == "" {
		c.state.SessionToken = c.newToken()
	}
	token := c.state.SessionToken

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	c.cancel = cancel
	c.state.IsSuggesting = true
	c.commitLocked()

	suggestions, err := c.gateway.SearchPlaces(ctx, query, token)
	cancel()

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		log.Debug().Str("query", query).Msg("autocomplete: discarding stale response")
		return
	}
	c.cancel = nil
	c.state.IsSuggesting = false
	if err != nil {
		log.Debug().Err(err).Str("query", query).Msg("autocomplete: search failed")
		suggestions = nil
	}
	if len(suggestions) > gateway.MaxSuggestions {
		suggestions = suggestions[:gateway.MaxSuggestions]
	}
	c.state.Suggestions = append([]models.Suggestion(nil), suggestions...)
	c.commitLocked()
}

// Select resolves s and saves it as a marker labelled with s.Name. On
// success the suggestions and session token are cleared and the query shows
// the label. On failure the state is left as it was so the user can retry.
func (c *Coordinator) Select(ctx context.Context, s models.Suggestion) (*models.ResolvedLocation, error) {
	if !c.gateway.Configured() {
		return nil, gateway.ErrNotConfigured
	}

	c.mu.Lock()
	token := c.state.SessionToken
	c.mu.Unlock()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	loc, err := c.gateway.ResolvePlace(reqCtx, s.PlaceID, token)
	if err != nil {
		return nil, fmt.Errorf("autocomplete: resolve %q: %w", s.PlaceID, err)
	}

	resolved := &models.ResolvedLocation{
		Latitude:  loc.Lat,
		Longitude: loc.Lng,
		Label:     s.Name,
	}

	if c.markers != nil {
		if _, err := c.markers.AddMarker(reqCtx, resolved.Latitude, resolved.Longitude, resolved.Label); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSaveMarker, err)
		}
	}

	c.mu.Lock()
	c.state.Query = s.Name
	c.supersedeLocked()
	c.state.Suggestions = nil
	c.state.SessionToken = ""
	c.commitLocked()

	return resolved, nil
}

// Submit is the explicit search action. It selects the first current
// suggestion if there is one, otherwise runs a one-shot search and selects
// its first result.
func (c *Coordinator) Submit(ctx context.Context) (*models.ResolvedLocation, error) {
	c.mu.Lock()
	query := strings.TrimSpace(c.state.Query)
	var first *models.Suggestion
	if len(c.state.Suggestions) > 0 {
		s := c.state.Suggestions[0]
		first = &s
	}
	c.mu.Unlock()

	if query == "" {
		return nil, ErrEmptyQuery
	}
	if first != nil {
		return c.Select(ctx, *first)
	}
	if !c.gateway.Configured() {
		return nil, gateway.ErrNotConfigured
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	suggestions, err := c.gateway.SearchPlaces(reqCtx, query, "")
	cancel()
	if err != nil {
		return nil, fmt.Errorf("autocomplete: search %q: %w", query, err)
	}
	if len(suggestions) == 0 || suggestions[0].PlaceID == "" {
		return nil, ErrNoResults
	}

	pick := suggestions[0]
	if pick.Name == "" {
		pick.Name = query
	}
	return c.Select(ctx, pick)
}

// CheckHealth probes the proxy and records the advisory result. It never
// touches the query, suggestions or session token.
func (c *Coordinator) CheckHealth(ctx context.Context) Health {
	c.mu.Lock()
	c.state.Health = HealthChecking
	c.commitLocked()

	health := HealthError
	if c.gateway.Configured() {
		reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
		if c.gateway.HealthCheck(reqCtx) {
			health = HealthOK
		}
		cancel()
	}

	c.mu.Lock()
	c.state.Health = health
	c.commitLocked()
	return health
}

// Close cancels any pending timer or request. Later calls to SetQuery are ignored.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.supersedeLocked()
}

// supersedeLocked invalidates the current timer and request.
func (c *Coordinator) supersedeLocked() {
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.IsSuggesting = false
}

func (c *Coordinator) snapshotLocked() State {
	s := c.state
	s.Suggestions = append([]models.Suggestion(nil), c.state.Suggestions...)
	return s
}

// commitLocked releases the lock and notifies the listener with the new state.
//
// Snapshots reach the listener in the order they were committed, so the last
// state it sees is always the current one. A commit made while another
// goroutine is delivering is queued and handed over by that goroutine.
func (c *Coordinator) commitLocked() {
	if c.onChange == nil {
		c.mu.Unlock()
		return
	}
	c.pending = append(c.pending, c.snapshotLocked())
	if c.notifying {
		c.mu.Unlock()
		return
	}

	c.notifying = true
	for len(c.pending) > 0 {
		batch := c.pending
		c.pending = nil
		c.mu.Unlock()
		for _, s := range batch {
			c.onChange(s)
		}
		c.mu.Lock()
	}
	c.notifying = false
	c.mu.Unlock()
}
