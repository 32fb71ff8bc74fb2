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

	"github.com/minaorangina/mancala/config"
	"github.com/minaorangina/mancala/server"
	"github.com/minaorangina/mancala/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := config.NewLogger(cfg.DevLogging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results store.ResultStore = store.NewInMemoryResultStore()
	if cfg.RedisAddr != "" {
		client, err := store.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalw("could not connect to redis", "error", err)
		}
		defer client.Close()

		results = store.NewRedisResultStore(client, cfg.RedisResultTTL)
		log.Infow("archiving results in redis", "addr", cfg.RedisAddr, "ttl", cfg.RedisResultTTL)
	}

	s := server.NewServer(server.ServerOpts{
		Store:           store.NewInMemoryGameStore(),
		Results:         results,
		Logger:          log,
		AllowedOrigins:  cfg.AllowedOrigins,
		StrictOwnership: cfg.StrictOwnership,
	})
	s.Addr = cfg.Addr()

	go func() {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Warnw("could not shut down cleanly", "error", err)
		}
	}()

	log.Infof("Listening on %s...", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalw("server stopped", "error", err)
	}
}
