package main

import (
	"context"
	"log/slog"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/thereayou/chatrooms/internal/config"
	"github.com/thereayou/chatrooms/internal/logger"
	"github.com/thereayou/chatrooms/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	srv, err := server.NewServer(cfg, log)
	if err != nil {
		log.Error("server init failed", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server stopped unexpectedly", "error", err)
			_ = srv.Close()
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"chatrooms": func(ctx context.Context) error {
				log.Info("graceful shutdown initiated")
				err := srv.Shutdown(ctx)
				if cerr := srv.Close(); err == nil {
					err = cerr
				}
				return err
			},
		},
	)

	code := <-wait
	log.Info("exited", "code", code)
	os.Exit(code)
}
