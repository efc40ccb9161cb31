package strategy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/utils"
)

// ScrapePayload 页面抓取策略的原始结果
//
// 结构化blob解析成功时字段较全;og兜底只有标题/描述/封面。
// 未知计数保持0。抓取结果永远不标记为第一方数据。
type ScrapePayload struct {
	Title           string
	Description     string
	ThumbnailURL    string
	Views           int64
	Likes           int64
	Comments        int64
	Shares          int64
	AuthorHandle    string
	AuthorName      string
	AuthorAvatar    string
	AuthorBio       string
	AuthorVerified  bool
	AuthorFollowers int64
	DurationSeconds int64
	CreateTime      int64 // unix秒,0表示未知
	FromStateBlob   bool  // true=结构化blob,false=og兜底
}

func (*ScrapePayload) rawPayload() {}

// ScrapeStrategy 页面抓取策略
//
// 先找页面内嵌的全局状态JSON(各平台的marker不同),任何一步
// 解析失败都降级到og meta标签,而不是让整个链步骤失败。
type ScrapeStrategy struct {
	platform metadata.Platform
	client   *Client
	logger   *zap.Logger
}

// NewScrapeStrategy 创建页面抓取策略
func NewScrapeStrategy(platform metadata.Platform, client *Client, logger *zap.Logger) *ScrapeStrategy {
	return &ScrapeStrategy{
		platform: platform,
		client:   client,
		logger:   logger,
	}
}

func (s *ScrapeStrategy) Name() string    { return MethodScrape }
func (s *ScrapeStrategy) Source() string  { return fmt.Sprintf("%s_page_scrape", s.platform) }
func (s *ScrapeStrategy) Authentic() bool { return false }

// Extract 提取视频元数据(无需凭证)
func (s *ScrapeStrategy) Extract(ctx context.Context, videoURL string) (RawPayload, error) {
	html, err := s.client.GetHTML(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	// 1. 结构化blob优先
	var payload *ScrapePayload
	switch s.platform {
	case metadata.PlatformYouTube:
		payload = parseYouTubeStateBlob(html)
	case metadata.PlatformTikTok:
		payload = parseTikTokStateBlob(html)
	case metadata.PlatformInstagram:
		payload = parseInstagramSharedData(html)
	}
	if payload != nil {
		payload.FromStateBlob = true
		return payload, nil
	}

	s.logger.Debug("no usable state blob, falling back to meta tags",
		zap.String("platform", string(s.platform)))

	// 2. og meta标签兜底
	payload = parseOpenGraph(html)
	if payload == nil {
		return nil, fmt.Errorf("%w: neither state blob nor og tags found", utils.ErrMalformedResponse)
	}

	return payload, nil
}

// extractJSONBlob 从HTML中按marker定位JSON对象
//
// 找到marker后从第一个 { 开始做括号配对扫描(跳过字符串与转义),
// 返回完整的JSON对象字节;找不到返回nil。
func extractJSONBlob(html []byte, marker string) []byte {
	idx := bytes.Index(html, []byte(marker))
	if idx < 0 {
		return nil
	}

	start := bytes.IndexByte(html[idx+len(marker):], '{')
	if start < 0 {
		return nil
	}
	start += idx + len(marker)

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(html); i++ {
		c := html[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return html[start : i+1]
			}
		}
	}
	return nil
}

// parseYouTubeStateBlob 解析 ytInitialPlayerResponse
func parseYouTubeStateBlob(html []byte) *ScrapePayload {
	blob := extractJSONBlob(html, "ytInitialPlayerResponse")
	if blob == nil {
		return nil
	}

	var state struct {
		VideoDetails struct {
			Title            string `json:"title"`
			ShortDescription string `json:"shortDescription"`
			LengthSeconds    string `json:"lengthSeconds"`
			ViewCount        string `json:"viewCount"`
			Author           string `json:"author"`
			ChannelID        string `json:"channelId"`
			Thumbnail        struct {
				Thumbnails []struct {
					URL string `json:"url"`
				} `json:"thumbnails"`
			} `json:"thumbnail"`
		} `json:"videoDetails"`
	}
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil
	}

	vd := state.VideoDetails
	if vd.Title == "" && vd.Author == "" {
		return nil
	}

	payload := &ScrapePayload{
		Title:           vd.Title,
		Description:     vd.ShortDescription,
		Views:           utils.ParseCount(vd.ViewCount),
		AuthorName:      vd.Author,
		DurationSeconds: utils.ParseCount(vd.LengthSeconds),
	}
	// 取最大尺寸的封面(列表按尺寸升序)
	if n := len(vd.Thumbnail.Thumbnails); n > 0 {
		payload.ThumbnailURL = vd.Thumbnail.Thumbnails[n-1].URL
	}
	return payload
}

// tiktokItemStruct TikTok状态blob里的视频条目(两种marker共用)
type tiktokItemStruct struct {
	Desc       string `json:"desc"`
	CreateTime string `json:"createTime"`
	Video      struct {
		Duration int64  `json:"duration"`
		Cover    string `json:"cover"`
	} `json:"video"`
	Author struct {
		UniqueID     string `json:"uniqueId"`
		Nickname     string `json:"nickname"`
		AvatarLarger string `json:"avatarLarger"`
		Signature    string `json:"signature"`
		Verified     bool   `json:"verified"`
	} `json:"author"`
	Stats struct {
		PlayCount    int64 `json:"playCount"`
		DiggCount    int64 `json:"diggCount"`
		CommentCount int64 `json:"commentCount"`
		ShareCount   int64 `json:"shareCount"`
	} `json:"stats"`
	AuthorStats struct {
		FollowerCount int64 `json:"followerCount"`
	} `json:"authorStats"`
}

// parseTikTokStateBlob 解析TikTok页面状态
//
// 新版页面用 __UNIVERSAL_DATA_FOR_REHYDRATION__,旧版用 SIGI_STATE,
// 两种都试。
func parseTikTokStateBlob(html []byte) *ScrapePayload {
	// 新版marker
	if blob := extractJSONBlob(html, "__UNIVERSAL_DATA_FOR_REHYDRATION__"); blob != nil {
		var state struct {
			DefaultScope map[string]json.RawMessage `json:"__DEFAULT_SCOPE__"`
		}
		if err := json.Unmarshal(blob, &state); err == nil {
			if raw, ok := state.DefaultScope["webapp.video-detail"]; ok {
				var detail struct {
					ItemInfo struct {
						ItemStruct tiktokItemStruct `json:"itemStruct"`
					} `json:"itemInfo"`
				}
				if err := json.Unmarshal(raw, &detail); err == nil {
					if p := tiktokItemToPayload(&detail.ItemInfo.ItemStruct); p != nil {
						return p
					}
				}
			}
		}
	}

	// 旧版marker
	if blob := extractJSONBlob(html, "SIGI_STATE"); blob != nil {
		var state struct {
			ItemModule map[string]tiktokItemStruct `json:"ItemModule"`
		}
		if err := json.Unmarshal(blob, &state); err == nil {
			for _, item := range state.ItemModule {
				if p := tiktokItemToPayload(&item); p != nil {
					return p
				}
			}
		}
	}

	return nil
}

func tiktokItemToPayload(item *tiktokItemStruct) *ScrapePayload {
	if item.Desc == "" && item.Author.UniqueID == "" {
		return nil
	}

	createTime, _ := strconv.ParseInt(item.CreateTime, 10, 64)

	return &ScrapePayload{
		Title:           item.Desc,
		Description:     item.Desc,
		ThumbnailURL:    item.Video.Cover,
		Views:           utils.NonNegative(item.Stats.PlayCount),
		Likes:           utils.NonNegative(item.Stats.DiggCount),
		Comments:        utils.NonNegative(item.Stats.CommentCount),
		Shares:          utils.NonNegative(item.Stats.ShareCount),
		AuthorHandle:    item.Author.UniqueID,
		AuthorName:      item.Author.Nickname,
		AuthorAvatar:    item.Author.AvatarLarger,
		AuthorBio:       item.Author.Signature,
		AuthorVerified:  item.Author.Verified,
		AuthorFollowers: utils.NonNegative(item.AuthorStats.FollowerCount),
		DurationSeconds: utils.NonNegative(item.Video.Duration),
		CreateTime:      createTime,
	}
}

// parseInstagramSharedData 解析 window._sharedData
func parseInstagramSharedData(html []byte) *ScrapePayload {
	blob := extractJSONBlob(html, "window._sharedData")
	if blob == nil {
		return nil
	}

	var state struct {
		EntryData struct {
			PostPage []struct {
				Graphql struct {
					ShortcodeMedia struct {
						DisplayURL         string  `json:"display_url"`
						VideoViewCount     int64   `json:"video_view_count"`
						VideoDuration      float64 `json:"video_duration"`
						TakenAtTimestamp   int64   `json:"taken_at_timestamp"`
						EdgeMediaToCaption struct {
							Edges []struct {
								Node struct {
									Text string `json:"text"`
								} `json:"node"`
							} `json:"edges"`
						} `json:"edge_media_to_caption"`
						EdgeMediaPreviewLike struct {
							Count int64 `json:"count"`
						} `json:"edge_media_preview_like"`
						EdgeMediaToComment struct {
							Count int64 `json:"count"`
						} `json:"edge_media_to_comment"`
						Owner struct {
							Username       string `json:"username"`
							FullName       string `json:"full_name"`
							IsVerified     bool   `json:"is_verified"`
							ProfilePicURL  string `json:"profile_pic_url"`
							EdgeFollowedBy struct {
								Count int64 `json:"count"`
							} `json:"edge_followed_by"`
						} `json:"owner"`
					} `json:"shortcode_media"`
				} `json:"graphql"`
			} `json:"PostPage"`
		} `json:"entry_data"`
	}
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil
	}
	if len(state.EntryData.PostPage) == 0 {
		return nil
	}

	media := state.EntryData.PostPage[0].Graphql.ShortcodeMedia
	if media.Owner.Username == "" && media.DisplayURL == "" {
		return nil
	}

	caption := ""
	if len(media.EdgeMediaToCaption.Edges) > 0 {
		caption = media.EdgeMediaToCaption.Edges[0].Node.Text
	}

	return &ScrapePayload{
		Title:           caption,
		Description:     caption,
		ThumbnailURL:    media.DisplayURL,
		Views:           utils.NonNegative(media.VideoViewCount),
		Likes:           utils.NonNegative(media.EdgeMediaPreviewLike.Count),
		Comments:        utils.NonNegative(media.EdgeMediaToComment.Count),
		AuthorHandle:    media.Owner.Username,
		AuthorName:      media.Owner.FullName,
		AuthorVerified:  media.Owner.IsVerified,
		AuthorAvatar:    media.Owner.ProfilePicURL,
		AuthorFollowers: utils.NonNegative(media.Owner.EdgeFollowedBy.Count),
		DurationSeconds: int64(media.VideoDuration),
		CreateTime:      media.TakenAtTimestamp,
	}
}

// parseOpenGraph 从og meta标签提取粗粒度字段
func parseOpenGraph(html []byte) *ScrapePayload {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}

	metaContent := func(property string) string {
		content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
		return strings.TrimSpace(content)
	}

	title := metaContent("og:title")
	description := metaContent("og:description")
	image := metaContent("og:image")

	if title == "" && description == "" {
		return nil
	}

	return &ScrapePayload{
		Title:        title,
		Description:  description,
		ThumbnailURL: image,
	}
}
