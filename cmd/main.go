package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vcross/metadata-service/internal/cache"
	"vcross/metadata-service/internal/config"
	"vcross/metadata-service/internal/router"
	"vcross/metadata-service/internal/service"
)

func main() {
	// 1. 初始化日志
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. 加载配置
	cfg, err := config.LoadConfig("config/dev.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Starting Metadata Service", zap.Int("port", cfg.Server.Port))

	// 3. 连接 Redis(失败只禁用缓存,不退出)
	redisClient := initRedis(&cfg.Redis)

	ctx := context.Background()
	var cacheClient *redis.Client
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, cache will be disabled", zap.Error(err))
	} else {
		logger.Info("✓ Connected to Redis")
		cacheClient = redisClient
	}

	// 4. 初始化缓存服务(连接失败时cacheClient为nil,缓存整体关闭)
	cacheService := cache.NewService(cacheClient, cfg.Cache.GetCacheTTL())

	// 5. 初始化解析服务
	resolverService := service.NewResolverService(cfg, cacheService, logger)

	// 6. 设置路由
	deps := &router.Dependencies{
		Config:      cfg,
		Resolver:    resolverService,
		RedisClient: redisClient,
		Logger:      logger,
	}
	r := router.SetupRouter(deps)

	// 7. 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 8. 启动服务器
	go func() {
		logger.Info("✓ HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 9. 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// 10. 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	redisClient.Close()
	logger.Info("Server stopped")
}

// initRedis 初始化 Redis 连接
func initRedis(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
