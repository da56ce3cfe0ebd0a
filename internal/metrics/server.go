package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server exposes a registry on /metrics, plus /healthz.
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewRouter builds the gin engine serving g.
func NewRouter(g prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

// NewServer creates a Server listening on addr. Call Start to serve.
func NewServer(addr string, g prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(g),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in a background goroutine. Listen errors are logged.
func (s *Server) Start() {
	go func() {
		s.logger.Info("metrics server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server failed", zap.Error(err))
		}
	}()
}

// Shutdown stops the server, waiting for in-flight scrapes until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	return nil
}
