package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	redisClient *redis.Client
	version     string
	startedAt   time.Time
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(redisClient *redis.Client, version string) *HealthHandler {
	return &HealthHandler{
		redisClient: redisClient,
		version:     version,
		startedAt:   time.Now(),
	}
}

// HealthCheck 健康检查
//
// 缓存不可用只降级不拒绝服务,所以redis状态只是附带信息,
// 不影响整体status。
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	redisStatus := "disabled"
	if h.redisClient != nil {
		redisStatus = "ok"
		if err := h.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "unavailable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
		"redis":  redisStatus,
	})
}

// Version 版本信息
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": h.version,
	})
}
