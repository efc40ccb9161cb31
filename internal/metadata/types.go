package metadata

// Platform 支持的视频平台
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
)

// Engagement 互动计数
//
// 未知计数一律为0,任何字段都不允许为负数。
type Engagement struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// Author 作者信息
type Author struct {
	Handle        string `json:"handle"`
	DisplayName   string `json:"displayName"`
	FollowerCount int64  `json:"followerCount"`
	Verified      bool   `json:"verified"`
	AvatarURL     string `json:"avatarUrl"`
	Bio           string `json:"bio"`
}

// Provenance 数据来源标记
//
// IsAuthentic 仅在成功策略返回第一方官方数据时为true;
// 抓取页面得到的结果即使HTTP成功也标记为false。
type Provenance struct {
	IsAuthentic      bool   `json:"isAuthentic"`
	DataSource       string `json:"dataSource"`
	ExtractionMethod string `json:"extractionMethod"`
}

// VideoMetadata 统一的视频元数据记录
//
// 每次解析构造一次,构造后不可变。持久化由外部调用方负责。
type VideoMetadata struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Engagement      Engagement `json:"engagement"`
	Author          Author     `json:"author"`
	Hashtags        []string   `json:"hashtags"`
	Platform        Platform   `json:"platform"`
	Rating          int        `json:"rating"`
	PublishedAt     string     `json:"publishedAt"`
	DurationSeconds int64      `json:"durationSeconds"`
	SourceURL       string     `json:"sourceUrl"`
	ThumbnailURL    string     `json:"thumbnailUrl"`
	Provenance      Provenance `json:"provenance"`
}
