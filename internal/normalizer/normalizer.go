package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/strategy"
	"vcross/metadata-service/internal/utils"
)

// ISO-8601时长,如 PT1H2M3S
var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// Normalize 将策略原始结果映射为统一记录
//
// 全函数:任何缺失字段都落到文档化的默认值,永不失败。
// 这是唯一同时知道原始结构和统一结构的地方。Rating 与(缺省时的)
// Hashtags 由外层补充。
func Normalize(payload strategy.RawPayload, platform metadata.Platform, sourceURL string, prov metadata.Provenance, now time.Time) *metadata.VideoMetadata {
	record := &metadata.VideoMetadata{
		Title:       placeholderTitle(platform),
		Description: "",
		Hashtags:    []string{},
		Platform:    platform,
		PublishedAt: now.UTC().Format(time.RFC3339),
		SourceURL:   sourceURL,
		Provenance:  prov,
	}

	switch p := payload.(type) {
	case *strategy.YouTubeAPIPayload:
		normalizeYouTubeAPI(record, p)
	case *strategy.TikTokProxyPayload:
		normalizeTikTokProxy(record, p)
	case *strategy.InstagramProxyPayload:
		normalizeInstagramProxy(record, p)
	case *strategy.OEmbedPayload:
		normalizeOEmbed(record, p)
	case *strategy.ScrapePayload:
		normalizeScrape(record, p)
	}

	// 文本字段统一做空白折叠
	if t := utils.SanitizeString(record.Title); t != "" {
		record.Title = t
	} else {
		record.Title = placeholderTitle(platform)
	}
	record.Description = utils.SanitizeString(record.Description)
	record.Author.DisplayName = utils.SanitizeString(record.Author.DisplayName)
	record.Author.Bio = utils.SanitizeString(record.Author.Bio)

	return record
}

func normalizeYouTubeAPI(record *metadata.VideoMetadata, p *strategy.YouTubeAPIPayload) {
	snippet := p.Video.Snippet

	record.Title = snippet.Title
	record.Description = snippet.Description
	record.Engagement = metadata.Engagement{
		Views:    utils.ParseCount(p.Video.Statistics.ViewCount),
		Likes:    utils.ParseCount(p.Video.Statistics.LikeCount),
		Comments: utils.ParseCount(p.Video.Statistics.CommentCount),
	}
	record.DurationSeconds = parseISODuration(p.Video.ContentDetails.Duration)

	if snippet.PublishedAt != "" {
		record.PublishedAt = snippet.PublishedAt
	}

	// 封面取maxres,缺失时降到high
	record.ThumbnailURL = snippet.Thumbnails.Maxres.URL
	if record.ThumbnailURL == "" {
		record.ThumbnailURL = snippet.Thumbnails.High.URL
	}

	// snippet.tags 视作策略已提供的话题标签
	record.Hashtags = tagsToHashtags(snippet.Tags)

	// 作者:频道查询成功用频道数据,降级时只剩视频条目里的频道名
	record.Author.DisplayName = snippet.ChannelTitle
	if p.Channel != nil {
		record.Author.Handle = p.Channel.Snippet.CustomURL
		record.Author.DisplayName = p.Channel.Snippet.Title
		record.Author.FollowerCount = utils.ParseCount(p.Channel.Statistics.SubscriberCount)
		record.Author.AvatarURL = p.Channel.Snippet.Thumbnails.High.URL
		record.Author.Bio = p.Channel.Snippet.Description
	}
}

func normalizeTikTokProxy(record *metadata.VideoMetadata, p *strategy.TikTokProxyPayload) {
	d := p.Data

	record.Title = d.Title
	record.Description = d.Title
	record.Engagement = metadata.Engagement{
		Views:    utils.NonNegative(d.PlayCount),
		Likes:    utils.NonNegative(d.DiggCount),
		Comments: utils.NonNegative(d.CommentCount),
		Shares:   utils.NonNegative(d.ShareCount),
	}
	record.DurationSeconds = utils.NonNegative(d.Duration)
	record.ThumbnailURL = d.Cover

	if d.CreateTime > 0 {
		record.PublishedAt = time.Unix(d.CreateTime, 0).UTC().Format(time.RFC3339)
	}

	record.Author = metadata.Author{
		Handle:      d.Author.UniqueID,
		DisplayName: d.Author.Nickname,
		AvatarURL:   d.Author.Avatar,
		Bio:         d.Author.Signature,
	}
}

func normalizeInstagramProxy(record *metadata.VideoMetadata, p *strategy.InstagramProxyPayload) {
	d := p.Data

	record.Title = d.Caption
	record.Description = d.Caption
	record.Engagement = metadata.Engagement{
		Views:    utils.NonNegative(d.VideoViewCount),
		Likes:    utils.NonNegative(d.LikeCount),
		Comments: utils.NonNegative(d.CommentCount),
	}
	record.DurationSeconds = int64(d.VideoDuration)
	record.ThumbnailURL = d.DisplayURL

	if d.TakenAtTimestmp > 0 {
		record.PublishedAt = time.Unix(d.TakenAtTimestmp, 0).UTC().Format(time.RFC3339)
	}

	record.Author = metadata.Author{
		Handle:        d.Owner.Username,
		DisplayName:   d.Owner.FullName,
		FollowerCount: utils.NonNegative(d.Owner.FollowerCount),
		Verified:      d.Owner.IsVerified,
		AvatarURL:     d.Owner.ProfilePicURL,
		Bio:           d.Owner.Biography,
	}
}

func normalizeOEmbed(record *metadata.VideoMetadata, p *strategy.OEmbedPayload) {
	record.Title = p.Title
	record.ThumbnailURL = p.ThumbnailURL
	record.Author.DisplayName = p.AuthorName
	record.Author.Handle = handleFromAuthorURL(p.AuthorURL)
}

func normalizeScrape(record *metadata.VideoMetadata, p *strategy.ScrapePayload) {
	record.Title = p.Title
	record.Description = p.Description
	record.Engagement = metadata.Engagement{
		Views:    utils.NonNegative(p.Views),
		Likes:    utils.NonNegative(p.Likes),
		Comments: utils.NonNegative(p.Comments),
		Shares:   utils.NonNegative(p.Shares),
	}
	record.DurationSeconds = utils.NonNegative(p.DurationSeconds)
	record.ThumbnailURL = p.ThumbnailURL

	if p.CreateTime > 0 {
		record.PublishedAt = time.Unix(p.CreateTime, 0).UTC().Format(time.RFC3339)
	}

	record.Author = metadata.Author{
		Handle:        p.AuthorHandle,
		DisplayName:   p.AuthorName,
		FollowerCount: utils.NonNegative(p.AuthorFollowers),
		Verified:      p.AuthorVerified,
		AvatarURL:     p.AuthorAvatar,
		Bio:           p.AuthorBio,
	}
}

// placeholderTitle 标题不可恢复时的平台占位串
func placeholderTitle(platform metadata.Platform) string {
	switch platform {
	case metadata.PlatformYouTube:
		return "YouTube video"
	case metadata.PlatformTikTok:
		return "TikTok video"
	case metadata.PlatformInstagram:
		return "Instagram video"
	default:
		return "Video"
	}
}

// parseISODuration 解析 PT#H#M#S 形式的时长,失败返回0
func parseISODuration(raw string) int64 {
	m := isoDurationPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}

	var total int64
	if m[1] != "" {
		h, _ := strconv.ParseInt(m[1], 10, 64)
		total += h * 3600
	}
	if m[2] != "" {
		min, _ := strconv.ParseInt(m[2], 10, 64)
		total += min * 60
	}
	if m[3] != "" {
		s, _ := strconv.ParseInt(m[3], 10, 64)
		total += s
	}
	return total
}

// tagsToHashtags 把API返回的tag列表转成话题标签
//
// 含空格的tag不是合法话题,直接丢弃。去重保序,上限与文本提取一致。
// 与 ExtractHashtags 一样永不返回nil。
func tagsToHashtags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || strings.ContainsAny(tag, " \t") {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
		if len(result) >= utils.MaxHashtags {
			break
		}
	}

	return result
}

// handleFromAuthorURL 从oEmbed的author_url提取@handle
func handleFromAuthorURL(authorURL string) string {
	if authorURL == "" {
		return ""
	}
	trimmed := strings.TrimRight(authorURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return ""
	}
	last := trimmed[idx+1:]
	if strings.HasPrefix(last, "@") {
		return last
	}
	return ""
}
