package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/croissanceConsulting/coaching-sportif-tracker/config"
	"github.com/croissanceConsulting/coaching-sportif-tracker/routes"
	"github.com/croissanceConsulting/coaching-sportif-tracker/services"
	"github.com/croissanceConsulting/coaching-sportif-tracker/utils"

	"github.com/gin-gonic/gin"
)

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := config.NewLogger("coach-portal", cfg.LogLevel)
	if cfg.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}

	store := services.NewAirtableClient(cfg.AirtableURL, cfg.AirtableAPIKey, cfg.AirtableBaseID, cfg.StoreTimeout)
	if !store.IsConfigured() {
		log.Warn().Msg("Airtable credentials missing, serving demo data")
	}

	// a nil presigner leaves s3:// eBook links unavailable
	var presigner services.LinkPresigner
	if cfg.S3Region != "" {
		p, err := utils.NewS3LinkPresigner(ctx, cfg.S3Region, cfg.EbookLinkTTL)
		if err != nil {
			return fmt.Errorf("s3 presigner: %w", err)
		}
		presigner = p
	}

	router := routes.SetupRouter(routes.NewDeps(cfg, db, store, presigner, log))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
