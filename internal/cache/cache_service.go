package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/utils"
)

// Service 解析结果缓存
//
// 只缓存成功的解析结果,失败永不入缓存。redis客户端为nil时
// 缓存整体禁用,读写都静默退化。
type Service struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewService 创建缓存服务
func NewService(redisClient *redis.Client, ttl time.Duration) *Service {
	return &Service{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Get 从缓存获取解析结果
func (s *Service) Get(ctx context.Context, url string) (*metadata.VideoMetadata, error) {
	if s == nil || s.redis == nil {
		return nil, utils.ErrCacheMiss
	}

	key := generateCacheKey(url)

	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, utils.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var record metadata.VideoMetadata
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &record, nil
}

// Set 将解析结果写入缓存
func (s *Service) Set(ctx context.Context, url string, record *metadata.VideoMetadata) error {
	if s == nil || s.redis == nil {
		return nil
	}

	key := generateCacheKey(url)

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Delete 删除缓存
func (s *Service) Delete(ctx context.Context, url string) error {
	if s == nil || s.redis == nil {
		return nil
	}

	key := generateCacheKey(url)
	return s.redis.Del(ctx, key).Err()
}

// generateCacheKey 生成缓存key
func generateCacheKey(url string) string {
	hash := md5.Sum([]byte(url))
	return fmt.Sprintf("metadata:url:%x", hash)
}
