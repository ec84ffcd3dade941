package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atelier-studio/portfolio-backend/config"
	"github.com/atelier-studio/portfolio-backend/internal/bootstrap"
	mediahttp "github.com/atelier-studio/portfolio-backend/internal/media/http"
	"github.com/atelier-studio/portfolio-backend/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	store, closeStore, err := bootstrap.OpenStore(ctx, bootstrap.StoreOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	cache, err := bootstrap.OpenCache(cfg.Cache)
	if err != nil {
		log.Fatalf("cache: %v", err)
	}

	media, err := bootstrap.BuildMedia(cfg, cache)
	if err != nil {
		log.Fatalf("media: %v", err)
	}
	log.Printf("[info] loaded %d projects from %s", media.Catalog.Len(), cfg.App.ProjectsFile)

	sched := scheduler.NewScheduler(store, media.Orchestrator, scheduler.Options{RegenerateSpec: cfg.Sync.Cron})
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "portfolio-api",
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Projects:    media.Orchestrator,
		Store:       store,
		Cache:       cache,
		Media: mediahttp.Options{
			BaseFolder:    cfg.Media.BaseFolder,
			WebhookSecret: cfg.Webhook.Secret,
			WebhookMaxAge: cfg.Webhook.MaxAge,
			RefreshLimit:  cfg.RateLimit.RefreshLimit,
			RefreshWindow: cfg.RateLimit.RefreshWindow,
		},
	})
	if cfg.Webhook.Secret == "" {
		log.Println("[warn] WEBHOOK_SECRET is not set; media webhooks are accepted unsigned")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	sig := <-sigChan
	log.Printf("received %s, shutting down gracefully", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] server shutdown: %v", err)
	}
	sched.Stop(shutdownCtx)

	// detached cache write-backs outlive their requests; let them land
	done := make(chan struct{})
	go func() {
		media.Orchestrator.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Printf("[warn] pending cache writes abandoned: %v", shutdownCtx.Err())
	}
}
