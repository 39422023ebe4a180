package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"autoslidex-api/internal/application/presentation"
	"autoslidex-api/internal/interfaces/http/dto"
)

// HealthChecker 存储层健康检查接口
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// SystemHandler 系统级端点处理器：根信息、健康检查、就绪与存活探针
type SystemHandler struct {
	appName    string
	appVersion string
	svc        *presentation.Service
	store      HealthChecker
	startedAt  time.Time
}

// NewSystemHandler 创建系统处理器，store 传 nil 时健康检查跳过存储探测
func NewSystemHandler(appName, appVersion string, svc *presentation.Service, store HealthChecker) *SystemHandler {
	return &SystemHandler{
		appName:    appName,
		appVersion: appVersion,
		svc:        svc,
		store:      store,
		startedAt:  time.Now(),
	}
}

// Root 服务信息端点
// GET /
func (h *SystemHandler) Root(c *gin.Context) {
	dto.Success(c, gin.H{
		"service": h.appName,
		"version": h.appVersion,
		"endpoints": gin.H{
			"generate_outline": "POST /api/generate-outline",
			"update_slides":    "PUT /api/update-slides",
			"get_presentation": "GET /api/presentation/:id",
			"generate_ppt":     "POST /api/generate-ppt",
			"download":         "GET /api/download/:id",
			"delete":           "DELETE /api/presentation/:id",
			"health":           "GET /health",
			"metrics":          "GET /metrics",
		},
	})
}

// Health 健康检查，包含存储就绪状态与当前数据量
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	storeStatus := "ok"
	healthy := true
	if h.store != nil {
		if err := h.store.HealthCheck(ctx); err != nil {
			storeStatus = "unavailable"
			healthy = false
		}
	}

	var count int64 = -1
	if healthy {
		if n, err := h.svc.Count(ctx); err == nil {
			count = n
		}
	}

	body := gin.H{
		"status":         "healthy",
		"store":          storeStatus,
		"presentations":  count,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	}
	if !healthy {
		body["status"] = "degraded"
		c.JSON(503, body)
		return
	}
	dto.Success(c, body)
}

// Live 存活探针
// GET /live
func (h *SystemHandler) Live(c *gin.Context) {
	c.JSON(200, gin.H{"status": "alive"})
}

// Ready 就绪探针，存储不可用时返回 503
// GET /ready
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.store != nil {
		if err := h.store.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(503, gin.H{"status": "not ready"})
			return
		}
	}
	c.JSON(200, gin.H{"status": "ready"})
}
