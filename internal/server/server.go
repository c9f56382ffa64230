package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"StockDash/internal/dashboard"
)

const shutdownTimeout = 5 * time.Second

// Options configures the HTTP server.
type Options struct {
	Addr      string
	RateLimit float64 // requests per second, 0 disables limiting
	Burst     int
	Width     int
	Height    int
}

// Server exposes the dashboard over HTTP.
type Server struct {
	dash    *dashboard.Dashboard
	opts    Options
	limiter *rate.Limiter
	engine  *gin.Engine
}

// New builds the router for dash.
func New(dash *dashboard.Dashboard, opts Options) *Server {
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	s := &Server{dash: dash, opts: opts}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(), observe())
	if s.limiter != nil {
		r.Use(rateLimit(s.limiter))
	}

	r.GET("/healthz", handleHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/columns", s.handleColumns)
	api.GET("/page", s.handlePage)
	api.GET("/overview", s.handleOverview)
	api.GET("/summary", s.handleSummary)
	api.GET("/correlation", s.handleCorrelation)
	api.GET("/charts", s.handleCharts)
	api.GET("/charts/:kind", s.handleChart)
	api.GET("/charts/:kind/png", s.handleChartPNG)

	s.engine = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.opts.Addr).Msg("dashboard listening")
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("dashboard stopped")
	return nil
}
