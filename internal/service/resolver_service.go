package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vcross/metadata-service/internal/cache"
	"vcross/metadata-service/internal/chain"
	"vcross/metadata-service/internal/config"
	"vcross/metadata-service/internal/detector"
	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/normalizer"
	"vcross/metadata-service/internal/strategy"
	"vcross/metadata-service/internal/utils"
)

// ExtractionFailedError 解析链全部失败
//
// 携带按优先级排列的每策略失败原因,供调用方诊断与日志使用。
// 引擎绝不在失败时返回伪造数据,占位内容由调用方自己构造。
type ExtractionFailedError struct {
	Platform metadata.Platform
	Attempts []chain.Attempt
	cause    *chain.ExhaustedError
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("extraction failed: %v", e.cause)
}

func (e *ExtractionFailedError) Unwrap() error { return e.cause }

// ResolverService 元数据解析门面
//
// 外部子系统(HTTP路由、任务队列)只允许调用这里,
// 策略相关类型不向外泄露。
type ResolverService struct {
	detector *detector.PlatformDetector
	cache    *cache.Service
	executor *chain.Executor
	limiter  *utils.ConcurrencyLimiter
	logger   *zap.Logger
}

// NewResolverService 创建解析服务
//
// 每个平台的策略链顺序固定:官方/聚合API在前,oembed其次,页面抓取
// 垫底——越靠前的数据越权威越完整。
func NewResolverService(
	cfg *config.Config,
	cacheService *cache.Service,
	logger *zap.Logger,
) *ResolverService {
	client := strategy.NewClient(cfg.Resolver.GetRequestTimeout(), cfg.Resolver.UserAgent)
	creds := cfg.Credentials

	chains := map[metadata.Platform][]strategy.Strategy{
		metadata.PlatformYouTube: {
			strategy.NewYouTubeAPIStrategy(creds.YouTubeAPIKey, "", client, logger),
			strategy.NewOEmbedStrategy(metadata.PlatformYouTube, nil, client),
			strategy.NewScrapeStrategy(metadata.PlatformYouTube, client, logger),
		},
		metadata.PlatformTikTok: {
			strategy.NewProxyAPIStrategy(metadata.PlatformTikTok, creds.ProxyAPIKey, creds.ProxyAPIHost, client),
			strategy.NewOEmbedStrategy(metadata.PlatformTikTok, nil, client),
			strategy.NewScrapeStrategy(metadata.PlatformTikTok, client, logger),
		},
		metadata.PlatformInstagram: {
			strategy.NewProxyAPIStrategy(metadata.PlatformInstagram, creds.ProxyAPIKey, creds.ProxyAPIHost, client),
			strategy.NewOEmbedStrategy(metadata.PlatformInstagram, nil, client),
			strategy.NewScrapeStrategy(metadata.PlatformInstagram, client, logger),
		},
	}

	return &ResolverService{
		detector: detector.NewPlatformDetector(),
		cache:    cacheService,
		executor: chain.NewExecutor(chains, logger),
		limiter:  utils.NewConcurrencyLimiter(cfg.Resolver.MaxConcurrent),
		logger:   logger,
	}
}

// NewResolverServiceWithExecutor 使用自定义链执行器创建解析服务(测试用)
func NewResolverServiceWithExecutor(
	executor *chain.Executor,
	cacheService *cache.Service,
	maxConcurrent int,
	logger *zap.Logger,
) *ResolverService {
	return &ResolverService{
		detector: detector.NewPlatformDetector(),
		cache:    cacheService,
		executor: executor,
		limiter:  utils.NewConcurrencyLimiter(maxConcurrent),
		logger:   logger,
	}
}

// ResolveVideo 解析视频URL为统一元数据记录
func (s *ResolverService) ResolveVideo(ctx context.Context, rawURL string, skipCache bool) (*metadata.VideoMetadata, error) {
	// 1. 标准化URL(仅用于缓存key与检测,记录里保留原始输入)
	normalized := utils.NormalizeURL(rawURL)

	// 2. 检测平台(无法解析与未知域名同错)
	platform, err := s.detector.Detect(normalized)
	if err != nil {
		return nil, err
	}

	// 3. 检查缓存
	if !skipCache {
		if cached, err := s.cache.Get(ctx, normalized); err == nil {
			s.logger.Info("cache hit", zap.String("url", normalized))
			return cached, nil
		}
	}

	// 4. 并发控制
	s.limiter.Acquire()
	defer s.limiter.Release()

	// 5. 执行策略链
	s.logger.Info("resolving video",
		zap.String("url", normalized),
		zap.String("platform", string(platform)))

	payload, winner, err := s.executor.Resolve(ctx, platform, normalized)
	if err != nil {
		var exhausted *chain.ExhaustedError
		if errors.As(err, &exhausted) {
			s.logger.Error("all strategies exhausted",
				zap.String("url", normalized),
				zap.String("platform", string(platform)),
				zap.Error(err))
			return nil, &ExtractionFailedError{
				Platform: platform,
				Attempts: exhausted.Attempts,
				cause:    exhausted,
			}
		}
		return nil, err
	}

	// 6. 归一化
	prov := metadata.Provenance{
		IsAuthentic:      winner.Authentic(),
		DataSource:       winner.Source(),
		ExtractionMethod: winner.Name(),
	}
	record := normalizer.Normalize(payload, platform, rawURL, prov, time.Now())

	// 7. 补充派生字段:评级永远由互动计数推导,话题标签缺省时从描述提取
	record.Rating = utils.CalculateRating(record.Engagement.Views, record.Engagement.Likes)
	if len(record.Hashtags) == 0 {
		record.Hashtags = utils.ExtractHashtags(record.Description)
	}

	// 8. 写入缓存(仅成功结果)
	if err := s.cache.Set(ctx, normalized, record); err != nil {
		s.logger.Warn("cache set failed", zap.Error(err))
	}

	s.logger.Info("resolution success",
		zap.String("url", normalized),
		zap.String("platform", string(platform)),
		zap.String("strategy", winner.Name()),
		zap.Bool("authentic", prov.IsAuthentic))

	return record, nil
}

// ValidateURL 验证URL是否属于支持的平台
func (s *ResolverService) ValidateURL(rawURL string) (bool, metadata.Platform, string) {
	if !utils.IsValidURL(rawURL) {
		return false, "", utils.ErrInvalidURL.Error()
	}

	platform, err := s.detector.Detect(utils.NormalizeURL(rawURL))
	if err != nil {
		return false, "", fmt.Sprintf("unsupported platform: %v", err)
	}

	return true, platform, ""
}
