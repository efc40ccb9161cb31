package strategy

import (
	"context"
	"fmt"
	"net/url"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/utils"
)

// TikTokProxyPayload 聚合API返回的TikTok原始数据
type TikTokProxyPayload struct {
	Data struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Cover        string `json:"cover"`
		Duration     int64  `json:"duration"`
		CreateTime   int64  `json:"create_time"`
		PlayCount    int64  `json:"play_count"`
		DiggCount    int64  `json:"digg_count"`
		CommentCount int64  `json:"comment_count"`
		ShareCount   int64  `json:"share_count"`
		Author       struct {
			UniqueID  string `json:"unique_id"`
			Nickname  string `json:"nickname"`
			Avatar    string `json:"avatar"`
			Signature string `json:"signature"`
		} `json:"author"`
	} `json:"data"`
}

func (*TikTokProxyPayload) rawPayload() {}

// InstagramProxyPayload 聚合API返回的Instagram原始数据
type InstagramProxyPayload struct {
	Data struct {
		Caption         string  `json:"caption"`
		DisplayURL      string  `json:"display_url"`
		VideoViewCount  int64   `json:"video_view_count"`
		LikeCount       int64   `json:"like_count"`
		CommentCount    int64   `json:"comment_count"`
		VideoDuration   float64 `json:"video_duration"`
		TakenAtTimestmp int64   `json:"taken_at_timestamp"`
		Owner           struct {
			Username      string `json:"username"`
			FullName      string `json:"full_name"`
			IsVerified    bool   `json:"is_verified"`
			ProfilePicURL string `json:"profile_pic_url"`
			Biography     string `json:"biography"`
			FollowerCount int64  `json:"follower_count"`
		} `json:"owner"`
	} `json:"data"`
}

func (*InstagramProxyPayload) rawPayload() {}

// ProxyAPIStrategy 第三方聚合API策略
//
// 面向没有公开官方API的平台(TikTok、Instagram),通过带API密钥的
// 通用HTTP网关镜像平台数据。数据虽完整,但不是第一方来源。
type ProxyAPIStrategy struct {
	platform metadata.Platform
	apiKey   string
	apiHost  string
	client   *Client
}

// NewProxyAPIStrategy 创建聚合API策略
func NewProxyAPIStrategy(platform metadata.Platform, apiKey, apiHost string, client *Client) *ProxyAPIStrategy {
	return &ProxyAPIStrategy{
		platform: platform,
		apiKey:   apiKey,
		apiHost:  apiHost,
		client:   client,
	}
}

func (s *ProxyAPIStrategy) Name() string    { return MethodProxyAPI }
func (s *ProxyAPIStrategy) Source() string  { return fmt.Sprintf("%s_proxy_api", s.platform) }
func (s *ProxyAPIStrategy) Authentic() bool { return false }

// Extract 提取视频元数据
func (s *ProxyAPIStrategy) Extract(ctx context.Context, videoURL string) (RawPayload, error) {
	// 凭证未配置,不发网络请求
	if s.apiKey == "" || s.apiHost == "" {
		return nil, utils.ErrMissingCredential
	}

	headers := map[string]string{
		"X-RapidAPI-Key":  s.apiKey,
		"X-RapidAPI-Host": s.apiHost,
	}

	switch s.platform {
	case metadata.PlatformTikTok:
		endpoint := fmt.Sprintf("https://%s/api/tiktok/video?url=%s", s.apiHost, url.QueryEscape(videoURL))
		// 能解析出视频ID时一并传给网关;短链没有ID,只传完整URL
		if id := ExtractTikTokVideoID(videoURL); id != "" {
			endpoint += "&video_id=" + url.QueryEscape(id)
		}
		payload := &TikTokProxyPayload{}
		if err := s.client.GetJSON(ctx, endpoint, headers, payload); err != nil {
			return nil, err
		}
		// 顶层data缺失说明网关换了响应结构
		if payload.Data.ID == "" && payload.Data.Title == "" && payload.Data.Author.UniqueID == "" {
			return nil, fmt.Errorf("%w: empty data object", utils.ErrMalformedResponse)
		}
		return payload, nil

	case metadata.PlatformInstagram:
		endpoint := fmt.Sprintf("https://%s/api/instagram/post?url=%s", s.apiHost, url.QueryEscape(videoURL))
		if code := ExtractInstagramShortcode(videoURL); code != "" {
			endpoint += "&shortcode=" + url.QueryEscape(code)
		}
		payload := &InstagramProxyPayload{}
		if err := s.client.GetJSON(ctx, endpoint, headers, payload); err != nil {
			return nil, err
		}
		if payload.Data.Caption == "" && payload.Data.Owner.Username == "" && payload.Data.DisplayURL == "" {
			return nil, fmt.Errorf("%w: empty data object", utils.ErrMalformedResponse)
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("%w: proxy api has no endpoint for %s", utils.ErrNotFound, s.platform)
	}
}
