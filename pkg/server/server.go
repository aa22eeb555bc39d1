// Package server is the HTTP boundary: it maps generation requests onto
// the document and image collaborators and token downloads onto the
// artifact store's Resolve outcomes.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/paperdrop/paperdrop/pkg/artifact"
	"github.com/paperdrop/paperdrop/pkg/cfg"
	"github.com/paperdrop/paperdrop/pkg/imagegen"
	"github.com/paperdrop/paperdrop/pkg/logging"
	"github.com/paperdrop/paperdrop/pkg/metrics"
)

// Server wires the gin router over the artifact store and its
// collaborators.
type Server struct {
	config  *cfg.Config
	store   *artifact.Store
	images  *imagegen.Client
	logger  *logging.Logger
	router  *gin.Engine
	gateway metrics.GatewayMetrics
}

// New assembles the router with its middleware and routes. Nil gateway
// metrics fall back to a no-op sink.
func New(config *cfg.Config, store *artifact.Store, images *imagegen.Client, logger *logging.Logger, gateway metrics.GatewayMetrics) *Server {
	if gateway == nil {
		gateway = metrics.NoopGateway{}
	}

	s := &Server{
		config:  config,
		store:   store,
		images:  images,
		logger:  logger,
		gateway: gateway,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestID())
	router.Use(s.accessLog())
	router.Use(s.requestMetrics())

	if len(config.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  config.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Content-Type", "X-Request-ID"},
			ExposeHeaders: []string{"X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}))
	}

	if len(config.TrustedProxies) > 0 {
		router.ForwardedByClientIP = true
		if err := router.SetTrustedProxies(config.TrustedProxies); err != nil {
			logger.Error("unable to set trusted proxies", "error", err)
		}
	}

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/v1")
	v1.POST("/documents/reimbursement", s.bodyLimit(), s.handleReimbursement)
	v1.POST("/documents/invoice", s.bodyLimit(), s.handleInvoice)
	v1.POST("/images", s.bodyLimit(), s.handleImage)
	v1.GET("/files/:token", s.handleDownload)

	s.router = router
	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", srv.Addr, "public_url", s.config.PublicURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}
