package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/denisAlshanov/ytagent/internal/api/handlers"
	"github.com/denisAlshanov/ytagent/internal/api/middleware"
	"github.com/denisAlshanov/ytagent/internal/config"
	"github.com/denisAlshanov/ytagent/internal/models"
	"github.com/denisAlshanov/ytagent/internal/utils"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(cfg *config.Config, agentHandler *handlers.AgentHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.CustomRecovery(recoverWithResult))
	engine.Use(middleware.CorrelationIDMiddleware())

	// Health endpoints (no auth required)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/live", healthHandler.Liveness)

	// Swagger documentation (no auth required)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Agent endpoint, the key is checked before anything else
	engine.GET("/", middleware.AgentKeyMiddleware(&cfg.Agent), agentHandler.Convert)

	return &Router{
		engine: engine,
		config: cfg,
	}
}

// recoverWithResult answers a panic that escaped every handler with the
// usual failure body.
func recoverWithResult(c *gin.Context, recovered interface{}) {
	appErr := utils.NewInternalError()
	utils.LogError(c.Request.Context(), "Recovered from panic", appErr, utils.Fields{
		"panic": recovered,
	})
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.Failure("Agent Error: "+appErr.Message, nil))
}

// Handler exposes the engine for an http.Server.
func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
