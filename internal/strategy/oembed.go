package strategy

import (
	"context"
	"fmt"
	"net/url"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/utils"
)

// OEmbedPayload oEmbed端点返回的粗粒度数据
//
// oEmbed只有标题、作者显示名与封面,没有计数和话题标签,
// 所以这一层只作为低置信度兜底。
type OEmbedPayload struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ProviderName string `json:"provider_name"`
}

func (*OEmbedPayload) rawPayload() {}

// OEmbedStrategy 嵌入元数据策略
type OEmbedStrategy struct {
	platform  metadata.Platform
	endpoints map[metadata.Platform]string
	client    *Client
}

// NewOEmbedStrategy 创建oEmbed策略
//
// endpoints 为空时使用各平台公开端点,测试时可整体替换。
func NewOEmbedStrategy(platform metadata.Platform, endpoints map[metadata.Platform]string, client *Client) *OEmbedStrategy {
	if endpoints == nil {
		endpoints = map[metadata.Platform]string{
			metadata.PlatformYouTube:   "https://www.youtube.com/oembed",
			metadata.PlatformTikTok:    "https://www.tiktok.com/oembed",
			metadata.PlatformInstagram: "https://api.instagram.com/oembed",
		}
	}
	return &OEmbedStrategy{
		platform:  platform,
		endpoints: endpoints,
		client:    client,
	}
}

func (s *OEmbedStrategy) Name() string    { return MethodOEmbed }
func (s *OEmbedStrategy) Source() string  { return fmt.Sprintf("%s_oembed", s.platform) }
func (s *OEmbedStrategy) Authentic() bool { return false }

// Extract 提取视频元数据(无需凭证)
func (s *OEmbedStrategy) Extract(ctx context.Context, videoURL string) (RawPayload, error) {
	endpoint, ok := s.endpoints[s.platform]
	if !ok {
		return nil, fmt.Errorf("%w: no oembed endpoint for %s", utils.ErrNotFound, s.platform)
	}

	requestURL := fmt.Sprintf("%s?url=%s&format=json", endpoint, url.QueryEscape(videoURL))

	payload := &OEmbedPayload{}
	if err := s.client.GetJSON(ctx, requestURL, nil, payload); err != nil {
		return nil, err
	}

	// 标题和作者都为空的响应没有利用价值
	if payload.Title == "" && payload.AuthorName == "" {
		return nil, fmt.Errorf("%w: empty oembed envelope", utils.ErrMalformedResponse)
	}

	return payload, nil
}
