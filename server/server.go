// Package server assembles the hddlint HTTP API: a chi router exposing
// POST /api/v1/verify and POST /api/v1/metadata, backed by an optional
// result cache, wrapped in panic-recovery and request-logging middleware.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/hddlint/internal/cache"
	"github.com/dekarrin/hddlint/server/api"
	"github.com/dekarrin/hddlint/server/middle"
	"github.com/go-chi/chi/v5"
)

// Server is a running hddlint HTTP API instance.
type Server struct {
	router *chi.Mux
	cache  *cache.Cache
}

// New builds a Server. If cachePath is non-empty, a sqlite-backed result
// cache is opened at that path; an empty cachePath disables caching.
func New(cachePath string) (*Server, error) {
	s := &Server{router: chi.NewRouter()}

	if cachePath != "" {
		c, err := cache.Open(cachePath)
		if err != nil {
			return nil, fmt.Errorf("open result cache: %w", err)
		}
		s.cache = c
	}

	a := api.API{Cache: s.cache}

	s.router.Use(middle.DontPanic())
	s.router.Use(middle.RequestID())

	s.router.Route(api.PathPrefix, func(r chi.Router) {
		r.Get("/info", a.HTTPGetInfo())
		r.Post("/verify", a.HTTPPostVerify())
		r.Post("/metadata", a.HTTPPostMetadata())
	})

	return s, nil
}

// Close releases resources held by the server, including its result cache.
func (s *Server) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

// ServeForever listens on addr (HOST:PORT, or :PORT) until the process is
// terminated or ctx is canceled.
func (s *Server) ServeForever(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		<-ctx.Done()
		_ = httpSrv.Close()
	}()

	log.Printf("INFO  hddlintd listening on %s", addr)
	err := httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
