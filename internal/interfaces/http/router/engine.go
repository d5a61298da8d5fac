package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitebuild/backend/internal/infrastructure/config"
	"github.com/sitebuild/backend/internal/infrastructure/logger"
	"github.com/sitebuild/backend/internal/infrastructure/metrics"
	"github.com/sitebuild/backend/internal/interfaces/http/dto"
	"github.com/sitebuild/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig carries what the middleware stack needs
type EngineConfig struct {
	Logger      *zap.Logger
	HTTP        config.HTTPConfig
	Tracing     middleware.TracingConfig
	Metrics     *metrics.Metrics
	MetricsPath string
	Production  bool
}

// NewEngine builds a gin engine with the full middleware chain, a JSON 404
// and the Prometheus endpoint when metrics are configured.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	security := middleware.DefaultSecurityConfig()
	if cfg.Production {
		security.HSTSMaxAge = 31536000
		security.HSTSIncludeSubdomains = true
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(cfg.Tracing),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
		middleware.HTTPMetrics(cfg.Metrics),
		middleware.SecureWithConfig(security),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteNotFound, "route not found", middleware.GetRequestID(c)))
	})

	if cfg.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(cfg.Metrics.Handler()))
	}

	return engine, nil
}
