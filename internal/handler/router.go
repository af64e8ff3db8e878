package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"analysis/toolutil/internal/config"
	"analysis/toolutil/internal/handler/middleware"
	jwtpkg "analysis/toolutil/pkg/jwt"
)

// SetupRouter wires the gateway routes. A nil jwtManager leaves the API open.
func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	queueHandler *QueueHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	if jwtManager != nil {
		api.Use(middleware.BearerAuth(jwtManager))
	}
	{
		api.POST("/lists/:name", queueHandler.Push)
		api.POST("/sets/:name/pop", queueHandler.Pop)
		api.GET("/tmpdir", queueHandler.TempDir)
	}

	return r
}
