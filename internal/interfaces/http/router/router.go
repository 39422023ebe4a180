// Package router 提供路由注册
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autoslidex-api/internal/config"
	"autoslidex-api/internal/interfaces/http/handler"
	"autoslidex-api/internal/interfaces/http/middleware"
)

// New 构建 gin 引擎并注册全部路由
func New(cfg *config.Config, ph *handler.PresentationHandler, sh *handler.SystemHandler) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	if cfg.Observability.Tracing.Enabled {
		r.Use(middleware.Trace(cfg.App.Name))
		r.Use(middleware.TraceContext())
	}
	if cfg.Observability.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: cfg.Security.CORS.AllowedHeaders,
	}))

	// 系统端点
	r.GET("/", sh.Root)
	r.GET("/health", sh.Health)
	r.GET("/live", sh.Live)
	r.GET("/ready", sh.Ready)
	if cfg.Observability.Metrics.Enabled {
		r.GET(cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 业务端点
	api := r.Group("/api")
	{
		api.POST("/generate-outline", ph.GenerateOutline)
		api.PUT("/update-slides", ph.UpdateSlides)
		api.GET("/presentation/:id", ph.Get)
		api.POST("/generate-ppt", ph.GeneratePPT)
		api.GET("/download/:id", ph.Download)
		api.DELETE("/presentation/:id", ph.Delete)
	}

	return r
}
