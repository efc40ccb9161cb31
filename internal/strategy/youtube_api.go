package strategy

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"vcross/metadata-service/internal/utils"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// YouTubeVideoItem YouTube Data API 的视频条目
type YouTubeVideoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		ChannelID    string   `json:"channelId"`
		ChannelTitle string   `json:"channelTitle"`
		PublishedAt  string   `json:"publishedAt"`
		Tags         []string `json:"tags"`
		Thumbnails   struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
			Maxres struct {
				URL string `json:"url"`
			} `json:"maxres"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"` // ISO-8601,如 PT1M30S
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount    string `json:"viewCount"` // API以字符串返回计数
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
}

// YouTubeChannelItem YouTube Data API 的频道条目
type YouTubeChannelItem struct {
	Snippet struct {
		Title       string `json:"title"`
		CustomURL   string `json:"customUrl"`
		Description string `json:"description"`
		Thumbnails  struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount string `json:"subscriberCount"`
	} `json:"statistics"`
}

// YouTubeAPIPayload 官方API策略的原始结果
//
// Channel 为 nil 表示频道查询降级失败,作者字段由 normalizer
// 从视频条目兜底填充。
type YouTubeAPIPayload struct {
	Video   YouTubeVideoItem
	Channel *YouTubeChannelItem
}

func (*YouTubeAPIPayload) rawPayload() {}

// YouTubeAPIStrategy YouTube官方API策略
type YouTubeAPIStrategy struct {
	apiKey  string
	baseURL string
	client  *Client
	logger  *zap.Logger
}

// NewYouTubeAPIStrategy 创建YouTube官方API策略
//
// baseURL 为空时使用官方地址,测试时可指向本地mock。
func NewYouTubeAPIStrategy(apiKey, baseURL string, client *Client, logger *zap.Logger) *YouTubeAPIStrategy {
	if baseURL == "" {
		baseURL = youtubeAPIBase
	}
	return &YouTubeAPIStrategy{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

func (s *YouTubeAPIStrategy) Name() string    { return MethodOfficialAPI }
func (s *YouTubeAPIStrategy) Source() string  { return "youtube_data_api_v3" }
func (s *YouTubeAPIStrategy) Authentic() bool { return true }

// Extract 提取视频元数据
//
// 两段调用:先查视频,再查频道补作者信息。第二段失败只降级作者字段,
// 不影响整个策略的结果。
func (s *YouTubeAPIStrategy) Extract(ctx context.Context, videoURL string) (RawPayload, error) {
	// 凭证未配置,不发网络请求
	if s.apiKey == "" {
		return nil, utils.ErrMissingCredential
	}

	videoID := ExtractYouTubeVideoID(videoURL)
	if videoID == "" {
		return nil, fmt.Errorf("%w: no video id in url", utils.ErrNotFound)
	}

	// 1. 视频查询
	videoAPIURL := fmt.Sprintf("%s/videos?id=%s&part=snippet,statistics,contentDetails&key=%s",
		s.baseURL, url.QueryEscape(videoID), url.QueryEscape(s.apiKey))

	var videoResp struct {
		Items []YouTubeVideoItem `json:"items"`
	}
	if err := s.client.GetJSON(ctx, videoAPIURL, nil, &videoResp); err != nil {
		return nil, err
	}

	if len(videoResp.Items) == 0 {
		return nil, fmt.Errorf("%w: video %s", utils.ErrNotFound, videoID)
	}

	payload := &YouTubeAPIPayload{Video: videoResp.Items[0]}

	// 2. 频道查询(可降级)
	channelID := payload.Video.Snippet.ChannelID
	if channelID != "" {
		channelAPIURL := fmt.Sprintf("%s/channels?id=%s&part=snippet,statistics&key=%s",
			s.baseURL, url.QueryEscape(channelID), url.QueryEscape(s.apiKey))

		var channelResp struct {
			Items []YouTubeChannelItem `json:"items"`
		}
		if err := s.client.GetJSON(ctx, channelAPIURL, nil, &channelResp); err != nil {
			s.logger.Warn("channel lookup failed, author fields degraded",
				zap.String("channel_id", channelID),
				zap.Error(err))
		} else if len(channelResp.Items) > 0 {
			payload.Channel = &channelResp.Items[0]
		}
	}

	return payload, nil
}
