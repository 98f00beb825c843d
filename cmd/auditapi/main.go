package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	gatewayapp "github.com/call-audit-gateway/internal/app/gateway"
	"github.com/call-audit-gateway/internal/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Configure(logging.Config{})
	log := logging.WithComponent("main")

	cfg := gatewayapp.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := gatewayapp.Wire(ctx, cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("wiring gateway")
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: app.Handler,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("gateway server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	if cfg.UploadBucket != "" {
		go runOrphanSweeper(ctx, app, cfg.SweepInterval)
	} else {
		log.Warn().Msg("AUDIO_UPLOAD_BUCKET not set, orphan sweep disabled")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("shutdown complete")
}

func runOrphanSweeper(ctx context.Context, app *gatewayapp.App, interval time.Duration) {
	log := logging.WithComponent("sweeper")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			orphans, err := app.Sweeper.Sweep(ctx)
			if err != nil {
				log.Error().Err(err).Msg("sweep failed")
				continue
			}
			for _, key := range orphans {
				log.Warn().Str("key", key).Msg("orphaned upload with no registry entry")
			}
		}
	}
}
