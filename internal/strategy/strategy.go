package strategy

import (
	"context"
)

// 策略标识,写入 provenance.extractionMethod
const (
	MethodOfficialAPI = "official_api"
	MethodProxyAPI    = "proxy_api"
	MethodOEmbed      = "oembed"
	MethodScrape      = "html_scrape"
)

// RawPayload 策略原始结果
//
// 每个策略返回自己的原始结构,统一记录只由 normalizer 构造,
// 策略内部不允许拼装 VideoMetadata。
type RawPayload interface {
	rawPayload()
}

// Strategy 提取策略接口
//
// 约束:
// - Extract 只做一次提取尝试,不重试、不缓存、不写共享状态
//   (重试与缓存由上层统一实现)
// - 凭证未配置时必须快速失败(ErrMissingCredential),不发网络请求
// - 嵌套字段缺失用零值兜底,只有顶层结构完全对不上才算 ErrMalformedResponse
type Strategy interface {
	// Name 策略标识(Method* 常量之一)
	Name() string

	// Source 数据来源名,写入 provenance.dataSource
	Source() string

	// Authentic 结果是否为第一方官方数据
	Authentic() bool

	// Extract 提取视频元数据
	Extract(ctx context.Context, videoURL string) (RawPayload, error)
}
