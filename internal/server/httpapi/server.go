// Package httpapi exposes the auth endpoint over HTTP: register and login on
// POST, session lookup on GET, CORS for browser callers and a per-IP rate
// limit.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tpforum/internal/common"
	"github.com/dmitrijs2005/tpforum/internal/logging"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	corsMaxAge        = 86400
)

// NewRouter wires the auth routes behind the rate limiter and CORS.
func NewRouter(h *Handler, limiter *IPRateLimiter) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)

	router.HandleFunc("/", h.auth).Methods(http.MethodPost)
	router.HandleFunc("/api/auth", h.auth).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/session", h.session).Methods(http.MethodGet)

	if limiter != nil {
		router.Use(limiter.Middleware(h))
	}

	c := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", common.SessionTokenHeaderName},
		MaxAge:               corsMaxAge,
		OptionsSuccessStatus: http.StatusOK,
	})

	return c.Handler(router)
}

type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(a string, handler http.Handler, l logging.Logger) *Server {
	return &Server{
		address: a,
		handler: handler,
		logger:  l.With("module", "http_server"),
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
// onListen, when not nil, is called once the listener is bound.
func (s *Server) Run(ctx context.Context, onListen func(addr net.Addr)) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()
	if onListen != nil {
		onListen(listen.Addr())
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
