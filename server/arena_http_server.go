package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"arena-pro/server/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const rateLimiterCleanupInterval = time.Minute

type ArenaHttpServer struct {
	router      *Router
	muxRouter   *mux.Router
	rateLimiter *middleware.RateLimiter
	hub         *Hub
	srv         *http.Server
}

func NewArenaHttpServer(
	addr string,
	allowedOrigins []string,
	router *Router,
	muxRouter *mux.Router,
	rateLimiter *middleware.RateLimiter,
	hub *Hub) *ArenaHttpServer {

	s := &ArenaHttpServer{
		router:      router,
		muxRouter:   muxRouter,
		rateLimiter: rateLimiter,
		hub:         hub,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.handler(allowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.srv.RegisterOnShutdown(func() {
		log.Println("[ArenaHttpServer] Closing websocket clients")
		hub.Close()
	})
	return s
}

// handler assembles CORS -> rate limit -> router. Route metrics are a
// router middleware so they see the matched route template.
func (s *ArenaHttpServer) handler(allowedOrigins []string) http.Handler {
	s.router.RegisterRoutes()
	s.muxRouter.Use(middleware.Metrics)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return corsHandler.Handler(s.rateLimiter.Limit(s.muxRouter))
}

func (s *ArenaHttpServer) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves until ctx is done, then shuts down gracefully within
// shutdownTimeout.
func (s *ArenaHttpServer) Start(ctx context.Context, shutdownTimeout time.Duration) error {
	go s.cleanupVisitors(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[ArenaHttpServer] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[ArenaHttpServer] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("[ArenaHttpServer] Server exiting")
	return nil
}

func (s *ArenaHttpServer) cleanupVisitors(ctx context.Context) {
	ticker := time.NewTicker(rateLimiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.rateLimiter.Cleanup()
		}
	}
}
