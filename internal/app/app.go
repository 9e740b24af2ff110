// Package app wires configuration, storage, the places upstream and the HTTP engine.
package app

import (
	"context"
	"fmt"
	"time"

	_ "places-proxy/docs"
	"places-proxy/internal/config"
	"places-proxy/internal/handler"
	"places-proxy/internal/logger"
	"places-proxy/internal/middleware"
	"places-proxy/internal/places"
	"places-proxy/internal/repository"
	"places-proxy/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// DBError represents a database-related error.
type DBError struct {
	Op  string
	Err error
}

func (e *DBError) Error() string {
	return fmt.Sprintf("db error during %q: %v", e.Op, e.Err)
}

func (e *DBError) Unwrap() error { return e.Err }

// App holds the application-level dependencies.
type App struct {
	Router  *gin.Engine
	Markers *service.MarkerService
	db      *pgxpool.Pool
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Places  *handler.PlacesHandler
	Markers *handler.MarkerHandler
	Ingest  *handler.IngestHandler
}

// New builds the marker store selected by cfg, the places client and the router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	repo, err := a.openMarkerRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.GooglePlacesAPIKey == "" {
		log.Warn().Msg("GOOGLE_PLACES_API_KEY is not set; places endpoints will answer SERVER_ERROR")
	}
	placesClient := places.NewGoogleClient(
		cfg.GooglePlacesAPIKey,
		places.WithBaseURL(cfg.PlacesBaseURL),
		places.WithTimeout(cfg.UpstreamTimeout),
		places.WithRateLimit(cfg.UpstreamRatePerSecond, cfg.UpstreamBurst),
	)

	a.Markers = service.NewMarkerService(repo)
	a.Router = NewRouter(cfg, Handlers{
		Places:  handler.NewPlacesHandler(service.NewPlacesService(placesClient)),
		Markers: handler.NewMarkerHandler(a.Markers),
		Ingest:  handler.NewIngestHandler(service.NewIngestService()),
	})

	return a, nil
}

// NewMarkerService opens only the marker store, for tools that do not serve HTTP.
func NewMarkerService(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}
	repo, err := a.openMarkerRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.Markers = service.NewMarkerService(repo)
	return a, nil
}

func (a *App) openMarkerRepository(ctx context.Context, cfg config.Config) (repository.MarkerRepository, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		log.Info().Str("file", cfg.MarkersFile).Msg("using file marker store")
		return repository.NewFileRepository(cfg.MarkersFile), nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DBSource)
	if err != nil {
		return nil, &DBError{Op: "parse_dsn", Err: err}
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnIdleTime = time.Minute

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, &DBError{Op: "connect", Err: err}
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, &DBError{Op: "ping", Err: err}
	}

	repo := repository.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(connectCtx); err != nil {
		pool.Close()
		return nil, &DBError{Op: "ensure_schema", Err: err}
	}

	a.db = pool
	log.Info().Msg("using postgres marker store")
	return repo, nil
}

// NewRouter mounts the proxy routes on a fresh gin engine.
func NewRouter(cfg config.Config, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(cors.New(corsConfig(cfg)))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)

		api.GET("/markers", h.Markers.List)
		api.POST("/markers", h.Markers.Create)

		api.POST("/ingest", h.Ingest.Submit)

		api.GET("/places", h.Places.Autocomplete)
		api.GET("/place-details", h.Places.Details)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.DefaultConfig()
	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// Shutdown releases the database pool, if one was opened.
func (a *App) Shutdown() {
	if a.db != nil {
		a.db.Close()
		log.Info().Msg("database connection pool closed")
	}
}
