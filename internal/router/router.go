package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vcross/metadata-service/internal/config"
	"vcross/metadata-service/internal/handler"
	"vcross/metadata-service/internal/middleware"
	"vcross/metadata-service/internal/service"
)

// Dependencies 路由依赖
type Dependencies struct {
	Config      *config.Config
	Resolver    *service.ResolverService
	RedisClient *redis.Client
	Logger      *zap.Logger
}

// SetupRouter 设置路由
func SetupRouter(deps *Dependencies) *gin.Engine {
	// 设置 Gin 模式
	if deps.Config.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// 全局中间件
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(&deps.Config.CORS))

	// 创建限流器
	rateLimiter := middleware.NewRateLimiter(&deps.Config.RateLimit)

	// 创建处理器
	resolveHandler := handler.NewResolveHandler(deps.Resolver)
	healthHandler := handler.NewHealthHandler(deps.RedisClient, "1.0.0")

	// 健康检查 (无限流)
	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/version", healthHandler.Version)

	// API v1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(rateLimiter))
	{
		v1.POST("/resolve", resolveHandler.Resolve)
		v1.POST("/validate", resolveHandler.Validate)
	}

	return r
}
