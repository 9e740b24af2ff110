// @title						Places Proxy API
// @version					1.0
// @description				Same-origin proxy for Google Places autocomplete and details, plus a marker store.
// @BasePath					/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"places-proxy/internal/app"
	"places-proxy/internal/config"
	"places-proxy/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger.Setup(config.LogLevel, config.Environment)
	if config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.New(context.Background(), config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot initialize app")
	}
	defer application.Shutdown()

	srv := &http.Server{
		Addr:         config.ServerAddress,
		Handler:      application.Router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: config.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", config.ServerAddress).Msg("places proxy listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shut down")
	}

	log.Info().Msg("server stopped")
}
