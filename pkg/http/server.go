package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ChipTick/pkg/http/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Server is the read-only HTTP surface: the handler's routes plus the
// Prometheus scrape endpoint. Everything it serves is GET.
type Server struct {
	echo *echo.Echo
	host string
	port int
}

// ServerOption configures Server.
type ServerOption func(*Server)

// NewServer creates the Echo server and registers all routes.
func NewServer(handler Handler, opts ...ServerOption) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLogging())
	// The chart page and its history fetch may be embedded anywhere.
	e.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	if handler != nil {
		handler.RegisterRoutes(e)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s := &Server{echo: e, host: "0.0.0.0", port: 8080}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins serving in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	log.Info().Msg("http server stopped gracefully")
	return nil
}

// WithPort sets the listen port.
func WithPort(port int) ServerOption {
	return func(s *Server) {
		s.port = port
	}
}

// WithTimeouts sets read/write timeouts on the underlying server.
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(s *Server) {
		s.echo.Server.ReadTimeout = read
		s.echo.Server.WriteTimeout = write
	}
}
