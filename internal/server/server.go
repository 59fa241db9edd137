// Package server exposes the tracker over HTTP for dashboards and scripts.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/logging"
	"manuscript-tracker/internal/services"
)

var timeNow = time.Now

const shutdownTimeout = 10 * time.Second

// Options configure the HTTP server
type Options struct {
	Addr           string
	RequestTimeout time.Duration
	DateFormat     string
}

// Server serves the tracker API
type Server struct {
	api     api.API
	reports services.ReportingService
	opts    Options
	engine  *gin.Engine
}

// New builds the router around a tracker API
func New(tracker api.API, opts Options) *Server {
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}

	s := &Server{
		api:     tracker,
		reports: services.NewReportingService(tracker),
		opts:    opts,
	}

	if !logging.DebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(), s.requestTimeout())
	s.routes(engine)
	s.engine = engine
	return s
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/healthz", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/report", s.getReport)
		v1.GET("/report/markdown", s.getReportMarkdown)

		v1.GET("/chapters", s.listChapters)
		v1.PUT("/chapters/:ordinal/status", s.setChapterStatus)
		v1.PUT("/chapters/:ordinal/words", s.setWordCount)

		v1.GET("/tasks", s.listTasks)
		v1.POST("/tasks/:id/toggle", s.toggleTask)

		v1.GET("/feedback", s.listFeedback)
		v1.POST("/feedback", s.addFeedback)
	}
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger().Info("server listening", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Logger().Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeNow()
		c.Next()
		logging.Logger().Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", timeNow().Sub(start))
	}
}

func (s *Server) requestTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.RequestTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.opts.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
