package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/careermap-backend/internal/http/handlers"
	httpMW "github.com/yungbote/careermap-backend/internal/http/middleware"
	"github.com/yungbote/careermap-backend/internal/observability"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler   *httpH.AuthHandler
	GraphHandler  *httpH.GraphHandler
	CareerHandler *httpH.CareerHandler
	SkillHandler  *httpH.SkillHandler
	ChatHandler   *httpH.ChatHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestIDs())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	// Every route accepts anonymous callers; a valid session only personalizes.
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.OptionalAuth())
	}
	{
		if cfg.AuthHandler != nil {
			api.POST("/auth/register", cfg.AuthHandler.Register)
			api.POST("/auth/login", cfg.AuthHandler.Login)
		}

		if cfg.GraphHandler != nil {
			api.GET("/graph", cfg.GraphHandler.GetGraph)
		}

		if cfg.CareerHandler != nil {
			api.GET("/career", cfg.CareerHandler.GetCareer)
		}

		if cfg.SkillHandler != nil {
			api.GET("/skill/learning", cfg.SkillHandler.GetLearning)
			api.GET("/skill/careers", cfg.SkillHandler.GetCareers)
		}

		if cfg.ChatHandler != nil {
			api.POST("/chat", cfg.ChatHandler.SendMessage)
			api.POST("/ai/chat", cfg.ChatHandler.SendMessage)
		}
	}

	return r
}
