package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	previewhttp "github.com/GriffinCanCode/AgentOS/preview/internal/api/http"
	"github.com/GriffinCanCode/AgentOS/preview/internal/api/middleware"
	"github.com/GriffinCanCode/AgentOS/preview/internal/api/ws"
	"github.com/GriffinCanCode/AgentOS/preview/internal/client"
	"github.com/GriffinCanCode/AgentOS/preview/internal/config"
	"github.com/GriffinCanCode/AgentOS/preview/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/preview/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/preview/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview/builtin"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview/external"
	"github.com/GriffinCanCode/AgentOS/preview/internal/resolver"
	"github.com/GriffinCanCode/AgentOS/preview/internal/surface"
)

// Server wraps the HTTP server and the preview stack behind it.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	manager    *preview.Manager
	window     *preview.Window
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
	tracer     *tracing.Tracer
}

// NewServer builds the preview stack and the host API from cfg.
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing preview server",
		zap.String("addr", cfg.Addr()),
		zap.Int("viewport_width", cfg.Preview.ViewportWidth),
		zap.Int("viewport_height", cfg.Preview.ViewportHeight),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("preview", logger.Component("tracing"))
	window := preview.NewWindow(cfg.Preview.ViewportWidth, cfg.Preview.ViewportHeight)
	manager := newManager(cfg, window, logger, metrics, tracer)
	manager.SetDebug(cfg.Preview.Debug)

	gin.SetMode(gin.ReleaseMode)
	if cfg.Logging.Development {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.RequestLogger(logger.Component("http")))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
			zap.String("scope", cfg.RateLimit.Scope),
		)
		rl := middleware.DefaultRateLimitConfig()
		rl.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rl.Burst = cfg.RateLimit.Burst
		if cfg.RateLimit.Scope == "global" {
			router.Use(middleware.GlobalRateLimit(rl))
		} else {
			router.Use(middleware.RateLimit(rl))
		}
	}

	previewhttp.NewHandlers(manager, window, logger.Component("api")).Register(router)
	router.GET("/preview/stream", ws.NewHandler(manager, window, logger.Component("stream"), metrics).HandleConnection)
	router.GET("/metrics", monitoring.Handler(metrics))

	logger.Info("Server initialized",
		zap.Int("strategies", len(manager.Strategies())),
		zap.Bool("debug", cfg.Preview.Debug),
	)

	return &Server{
		router:  router,
		manager: manager,
		window:  window,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// newManager registers the built-in strategies ahead of the external one,
// each web-view strategy with its own proxy surface.
func newManager(cfg *config.Config, window *preview.Window, logger *logging.Logger, metrics *monitoring.Metrics, tracer *tracing.Tracer) *preview.Manager {
	resolverClient := client.New(client.Options{
		Name:              "preview-resolve",
		UserAgent:         cfg.Surface.UserAgent,
		Timeout:           cfg.Resolver.Timeout,
		Retries:           cfg.Resolver.Retries,
		MaxRedirects:      cfg.Resolver.MaxRedirects,
		RequestsPerSecond: cfg.Resolver.RequestsPerSecond,
		Logger:            logger.Component("resolver"),
	})
	surfaceClient := client.New(client.Options{
		Name:              "preview-surface",
		UserAgent:         cfg.Surface.UserAgent,
		Timeout:           cfg.Surface.Timeout,
		Retries:           cfg.Resolver.Retries,
		MaxRedirects:      cfg.Resolver.MaxRedirects,
		RequestsPerSecond: cfg.Resolver.RequestsPerSecond,
		Logger:            logger.Component("surface"),
	})
	newSurface := func(name string) surface.Surface {
		return surface.NewProxy(surfaceClient,
			surface.WithMaxBytes(cfg.Surface.MaxBytes),
			surface.WithLogger(logger.Component("surface").With(zap.String("strategy", name))),
		)
	}

	image := builtin.NewImage(logger.Component("preview"))

	video := builtin.NewVideo(builtin.VideoOptions{
		Host:     window,
		Logger:   logger.Component("preview"),
		Observer: metrics,
		Tracer:   tracer,
	})

	excluded := append(append([]string(nil), builtin.VideoDomains...), cfg.Preview.ExcludedDomains...)
	page := external.New(external.Options{
		Host:            window,
		Resolver:        resolver.NewHTTP(resolverClient, logger.Component("resolver")),
		ExcludedDomains: excluded,
		Logger:          logger.Component("preview"),
		Observer:        metrics,
		Tracer:          tracer,
	})

	manager := preview.NewManager(
		[]preview.Strategy{image, video, page},
		preview.WithLogger(logger.Component("manager")),
		preview.WithObserver(metrics),
	)
	for _, s := range manager.Strategies() {
		if !s.UsesWebView() {
			continue
		}
		if holder, ok := s.(preview.SurfaceHolder); ok {
			holder.AttachSurface(newSurface(s.Name()))
		}
	}
	return manager
}

// Router returns the Gin engine serving the host API.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Manager returns the preview manager.
func (s *Server) Manager() *preview.Manager {
	return s.manager
}

// Run serves the host API until Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown hides every preview, drains the HTTP server and flushes traces
// and logs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	s.manager.Hide()

	var err error
	if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
		s.logger.Error("Failed to stop HTTP server", zap.Error(shutdownErr))
		err = multierr.Append(err, fmt.Errorf("failed to stop HTTP server: %w", shutdownErr))
	}
	s.tracer.Close()
	err = multierr.Append(err, syncLogger(s.logger))
	return err
}

// syncLogger flushes the logger. Syncing a terminal or pipe fails with
// EINVAL or ENOTTY on some platforms, which is not a real failure.
func syncLogger(logger *logging.Logger) error {
	err := logger.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
