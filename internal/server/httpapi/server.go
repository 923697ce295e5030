// Package httpapi is the HTTP transport. It maps requests to AccountService
// operations and service outcomes to status codes; no business logic lives
// here.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/antonk9218/authd/internal/logging"
	"github.com/antonk9218/authd/internal/server/services"
	"github.com/gin-gonic/gin"
)

type Server struct {
	address  string
	logger   logging.Logger
	accounts *services.AccountService
}

func NewServer(address string, logger logging.Logger, accounts *services.AccountService) *Server {
	return &Server{
		address:  address,
		logger:   logger.With("module", "http_server"),
		accounts: accounts,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api/v1")
	api.POST("/user", s.registerAccount)
	api.POST("/login", s.login)

	protected := api.Group("")
	protected.Use(s.authRequired())
	protected.GET("/me", s.me)
	protected.PUT("/user", s.updateCredentials)

	return r
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
