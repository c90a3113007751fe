package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seastate/currentsim/internal/api"
	"github.com/seastate/currentsim/internal/current"
	"github.com/seastate/currentsim/internal/publish"
)

func runServe(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	noiseSeed := cfg.Seed
	if noiseSeed == 0 {
		noiseSeed = uint64(time.Now().UnixNano())
	}

	coord, err := current.New(cfg.Frame, cfg.Velocity, cfg.Angle, noiseSeed)
	if err != nil {
		return err
	}

	pub := publish.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		publish.WithChannel(cfg.Channel))
	defer pub.Close()
	coord.AddPublisher(pub)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: api.NewHandler(coord, logger)}
	go func() {
		logger.Info("control api listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received interrupt signal, shutting down")
		cancel()
	}()

	ticker := time.NewTicker(time.Duration(float64(time.Second) / cfg.RateHz))
	defer ticker.Stop()

	logger.Info("publishing current signal",
		"channel", cfg.Channel, "rate_hz", cfg.RateHz, "frame", cfg.Frame)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return srv.Shutdown(shutdownCtx)
		case now := <-ticker.C:
			if _, err := coord.Tick(ctx, now); err != nil && ctx.Err() == nil {
				logger.Warn("publish failed", "error", err)
			}
		}
	}
}
