package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lesson-tracker/config"
	"lesson-tracker/internal/api/handler"
	"lesson-tracker/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	if limiter != nil && cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(limiter, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window))
	}

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 整体快照（旧前端） ──
	r.GET("/api/data", h.Data.GetData)
	r.POST("/api/data", h.Data.ReplaceData)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.POST("", h.Course.CreateCourse)
			courses.GET("/:id", h.Course.GetCourse)
			courses.PUT("/:id", h.Course.UpdateCourse)
			courses.DELETE("/:id", h.Course.DeleteCourse)
		}

		// 课次模块
		sessions := v1.Group("/sessions")
		{
			sessions.GET("", h.Session.ListSessions)
			sessions.GET("/next", h.Session.NextSessions)
			sessions.GET("/:id/replacement", h.Session.GetReplacementStatus)
			sessions.POST("/:id/replacement", h.Session.ScheduleReplacement)
			sessions.PUT("/:id/attendance", h.Session.UpdateAttendance)
			sessions.PUT("/:id/date", h.Session.UpdateDate)
			sessions.DELETE("/:id", h.Session.DeleteSession)
		}

		// 统计模块
		v1.GET("/stats", h.Stats.GetStats)

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/sessions.xlsx", h.Export.ExportExcel)
			export.GET("/sessions.ics", h.Export.ExportICS)
		}
	}

	return r
}
