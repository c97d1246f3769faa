package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dekarrin/hddlint/internal/config"
	"github.com/dekarrin/hddlint/server"
)

func runServe(ctx context.Context, cfg config.Config, listen string) int {
	cachePath := ""
	if cfg.CacheEnabled {
		cachePath = cfg.CachePath
	}

	srv, err := server.New(cachePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR: could not initialize server:", err.Error())
		return ExitInternalError
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ServeForever(ctx, listen); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err.Error())
		return ExitInternalError
	}
	return ExitSuccess
}
