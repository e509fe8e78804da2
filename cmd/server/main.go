package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"decision-coach/internal/api"
	"decision-coach/internal/auth"
	"decision-coach/internal/config"
	"decision-coach/internal/db"
	"decision-coach/internal/llm"
	"decision-coach/internal/logger"
	"decision-coach/internal/metrics"
	redisdb "decision-coach/internal/redis"
	"decision-coach/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	path := os.Getenv("DECISION_COACH_CONFIG")
	if path == "" {
		path = "config.json"
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Init(cfg, log); err != nil {
		return fmt.Errorf("db init: %w", err)
	}
	stores, closeStores, err := redisdb.OpenStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStores()

	m := metrics.New()
	enhancer, stopLLM := llm.NewFromConfig(cfg.LLM, stores.State, stores.Cache, m, llm.SystemClock{}, log)
	defer stopLLM()
	if enhancer.Enabled() {
		checkModel(ctx, cfg.LLM, log)
	}

	gin.SetMode(cfg.Server.Mode)
	r := api.SetupRouter(cfg, &api.Deps{
		Sessions: auth.NewSessions(stores.State),
		Repo:     store.NewRepository(db.DB),
		Enhancer: enhancer,
		Metrics:  m,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "subpath", cfg.Server.Subpath)
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
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// checkModel only warns: the enhancer falls back to rules when the model is missing.
func checkModel(ctx context.Context, cfg config.LLMConfig, log *logger.Logger) {
	ok, err := llm.HasModel(ctx, cfg.URL, cfg.APIKey, cfg.Model)
	switch {
	case err != nil:
		log.Warn("could not list llm models", "url", cfg.URL, "error", err)
	case !ok:
		log.Warn("configured llm model not served by endpoint", "model", cfg.Model)
	}
}
