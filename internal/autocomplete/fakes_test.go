package autocomplete

import (
	"context"
	"sort"
	"sync"
	"time"

	"places-proxy/internal/models"

	"github.com/stretchr/testify/mock"
)

// manualClock is a Scheduler driven by Advance.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs due callbacks, in order, on the caller's goroutine.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

// Pending counts timers that are armed and not yet fired.
func (c *manualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type searchCall struct {
	Query string
	Token string
}

type resolveCall struct {
	PlaceID string
	Token   string
}

// fakeGateway answers searches through a pluggable function and records every call.
type fakeGateway struct {
	configured bool
	healthy    bool

	mu       sync.Mutex
	searches []searchCall
	resolves []resolveCall
	health   int

	searchFn  func(ctx context.Context, query string) ([]models.Suggestion, error)
	resolveFn func(placeID string) (*models.LatLng, error)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{configured: true, healthy: true}
}

func (g *fakeGateway) Configured() bool { return g.configured }

func (g *fakeGateway) HealthCheck(ctx context.Context) bool {
	g.mu.Lock()
	g.health++
	g.mu.Unlock()
	return g.healthy
}

func (g *fakeGateway) SearchPlaces(ctx context.Context, query, token string) ([]models.Suggestion, error) {
	g.mu.Lock()
	g.searches = append(g.searches, searchCall{Query: query, Token: token})
	fn := g.searchFn
	g.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, query)
}

func (g *fakeGateway) ResolvePlace(ctx context.Context, placeID, token string) (*models.LatLng, error) {
	g.mu.Lock()
	g.resolves = append(g.resolves, resolveCall{PlaceID: placeID, Token: token})
	fn := g.resolveFn
	g.mu.Unlock()
	if fn == nil {
		return nil, context.DeadlineExceeded
	}
	return fn(placeID)
}

func (g *fakeGateway) Searches() []searchCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]searchCall(nil), g.searches...)
}

func (g *fakeGateway) Resolves() []resolveCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]resolveCall(nil), g.resolves...)
}

// MockMarkerStore is a mock implementation of the MarkerStore interface
type MockMarkerStore struct {
	mock.Mock
}

func (m *MockMarkerStore) AddMarker(ctx context.Context, lat, lng float64, label string) (*models.Marker, error) {
	args := m.Called(ctx, lat, lng, label)
	return args.Get(0).(*models.Marker), args.Error(1)
}
