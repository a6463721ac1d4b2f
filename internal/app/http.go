package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/careermap-backend/internal/http"
	httpH "github.com/yungbote/careermap-backend/internal/http/handlers"
	httpMW "github.com/yungbote/careermap-backend/internal/http/middleware"
	"github.com/yungbote/careermap-backend/internal/observability"
	"github.com/yungbote/careermap-backend/internal/platform/logger"
)

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	Graph  *httpH.GraphHandler
	Career *httpH.CareerHandler
	Skill  *httpH.SkillHandler
	Chat   *httpH.ChatHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Auth:   httpH.NewAuthHandler(services.Auth),
		Graph:  httpH.NewGraphHandler(services.Graph),
		Career: httpH.NewCareerHandler(services.Career),
		Skill:  httpH.NewSkillHandler(services.Skill),
		Chat:   httpH.NewChatHandler(services.Chat),
	}
}

func wireRouter(log *logger.Logger, cfg Config, services Services, handlers Handlers, metrics *observability.Metrics) *gin.Engine {
	log.Info("Wiring router...")
	return http.NewRouter(http.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        metrics,
		AuthMiddleware: httpMW.NewAuthMiddleware(log, services.Auth),
		AuthHandler:    handlers.Auth,
		GraphHandler:   handlers.Graph,
		CareerHandler:  handlers.Career,
		SkillHandler:   handlers.Skill,
		ChatHandler:    handlers.Chat,
		HealthHandler:  handlers.Health,
	})
}
