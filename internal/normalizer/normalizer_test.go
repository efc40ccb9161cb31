package normalizer

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/strategy"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testProv(method string, authentic bool) metadata.Provenance {
	return metadata.Provenance{
		IsAuthentic:      authentic,
		DataSource:       "test_source",
		ExtractionMethod: method,
	}
}

func TestNormalizeYouTubeAPIFull(t *testing.T) {
	payload := &strategy.YouTubeAPIPayload{}
	payload.Video.Snippet.Title = "  My   Video  "
	payload.Video.Snippet.Description = "desc here"
	payload.Video.Snippet.ChannelTitle = "Some Channel"
	payload.Video.Snippet.PublishedAt = "2023-02-03T04:05:06Z"
	payload.Video.Snippet.Tags = []string{"golang", "golang", "two words", "tips"}
	payload.Video.Statistics.ViewCount = "1000"
	payload.Video.Statistics.LikeCount = "150"
	payload.Video.Statistics.CommentCount = "7"
	payload.Video.ContentDetails.Duration = "PT1H2M3S"

	channel := &strategy.YouTubeChannelItem{}
	channel.Snippet.Title = "Some Channel"
	channel.Snippet.CustomURL = "@somechannel"
	channel.Statistics.SubscriberCount = "52000"
	payload.Channel = channel

	record := Normalize(payload, metadata.PlatformYouTube, "https://youtu.be/x", testProv("official_api", true), testNow)

	assert.Equal(t, "My Video", record.Title)
	assert.Equal(t, "desc here", record.Description)
	assert.Equal(t, int64(1000), record.Engagement.Views)
	assert.Equal(t, int64(150), record.Engagement.Likes)
	assert.Equal(t, int64(7), record.Engagement.Comments)
	assert.Equal(t, int64(0), record.Engagement.Shares)
	assert.Equal(t, int64(3723), record.DurationSeconds)
	assert.Equal(t, "2023-02-03T04:05:06Z", record.PublishedAt)
	assert.Equal(t, "@somechannel", record.Author.Handle)
	assert.Equal(t, int64(52000), record.Author.FollowerCount)
	assert.Equal(t, []string{"#golang", "#tips"}, record.Hashtags)
	assert.True(t, record.Provenance.IsAuthentic)
	assert.Equal(t, "official_api", record.Provenance.ExtractionMethod)
	assert.Equal(t, "https://youtu.be/x", record.SourceURL)
}

func TestNormalizeYouTubeAPIDegradedChannel(t *testing.T) {
	payload := &strategy.YouTubeAPIPayload{}
	payload.Video.Snippet.Title = "Video"
	payload.Video.Snippet.ChannelTitle = "Channel From Snippet"
	// Channel == nil:频道查询降级

	record := Normalize(payload, metadata.PlatformYouTube, "u", testProv("official_api", true), testNow)

	assert.Equal(t, "Channel From Snippet", record.Author.DisplayName)
	assert.Equal(t, "", record.Author.Handle)
	assert.Equal(t, int64(0), record.Author.FollowerCount)
	assert.False(t, record.Author.Verified)
}

func TestNormalizeEmptyPayloadDefaults(t *testing.T) {
	// 完全空的payload也必须产出合法记录
	tests := []struct {
		platform    metadata.Platform
		payload     strategy.RawPayload
		placeholder string
	}{
		{metadata.PlatformYouTube, &strategy.YouTubeAPIPayload{}, "YouTube video"},
		{metadata.PlatformTikTok, &strategy.TikTokProxyPayload{}, "TikTok video"},
		{metadata.PlatformInstagram, &strategy.InstagramProxyPayload{}, "Instagram video"},
		{metadata.PlatformYouTube, &strategy.OEmbedPayload{}, "YouTube video"},
		{metadata.PlatformTikTok, &strategy.ScrapePayload{}, "TikTok video"},
	}

	for _, tt := range tests {
		record := Normalize(tt.payload, tt.platform, "src", testProv("x", false), testNow)

		assert.Equal(t, tt.placeholder, record.Title)
		assert.Equal(t, "", record.Description)
		assert.GreaterOrEqual(t, record.Engagement.Views, int64(0))
		assert.GreaterOrEqual(t, record.Engagement.Likes, int64(0))
		assert.GreaterOrEqual(t, record.DurationSeconds, int64(0))
		assert.Equal(t, tt.platform, record.Platform)
		assert.Equal(t, "2024-06-01T12:00:00Z", record.PublishedAt)
		assert.Equal(t, "src", record.SourceURL)
	}
}

func TestNormalizeTikTokProxy(t *testing.T) {
	payload := &strategy.TikTokProxyPayload{}
	payload.Data.Title = "dance #fyp"
	payload.Data.PlayCount = 50000
	payload.Data.DiggCount = 4000
	payload.Data.ShareCount = 120
	payload.Data.Duration = 15
	payload.Data.CreateTime = 1700000000
	payload.Data.Author.UniqueID = "dancer"
	payload.Data.Author.Nickname = "Dancer"

	record := Normalize(payload, metadata.PlatformTikTok, "u", testProv("proxy_api", false), testNow)

	assert.Equal(t, "dance #fyp", record.Title)
	assert.Equal(t, int64(50000), record.Engagement.Views)
	assert.Equal(t, int64(120), record.Engagement.Shares)
	assert.Equal(t, "dancer", record.Author.Handle)
	assert.Equal(t, "2023-11-14T22:13:20Z", record.PublishedAt)
	assert.False(t, record.Provenance.IsAuthentic)
}

func TestNormalizeNegativeCountsClamped(t *testing.T) {
	payload := &strategy.ScrapePayload{Views: -10, Likes: -1, DurationSeconds: -3}

	record := Normalize(payload, metadata.PlatformTikTok, "u", testProv("html_scrape", false), testNow)

	assert.Equal(t, int64(0), record.Engagement.Views)
	assert.Equal(t, int64(0), record.Engagement.Likes)
	assert.Equal(t, int64(0), record.DurationSeconds)
}

func TestNormalizeOEmbedHandle(t *testing.T) {
	payload := &strategy.OEmbedPayload{
		Title:        "clip",
		AuthorName:   "Some Creator",
		AuthorURL:    "https://www.tiktok.com/@somecreator",
		ThumbnailURL: "https://cdn.example/t.jpg",
	}

	record := Normalize(payload, metadata.PlatformTikTok, "u", testProv("oembed", false), testNow)

	assert.Equal(t, "clip", record.Title)
	assert.Equal(t, "@somecreator", record.Author.Handle)
	assert.Equal(t, "Some Creator", record.Author.DisplayName)
	assert.Equal(t, "https://cdn.example/t.jpg", record.ThumbnailURL)
	// oEmbed没有计数
	assert.Equal(t, metadata.Engagement{}, record.Engagement)
}

func TestNormalizeHashtagsSerializeAsEmptyArray(t *testing.T) {
	// 没有话题标签的记录序列化后必须是 [],不能出现 null
	payload := &strategy.OEmbedPayload{Title: "clip", AuthorName: "Someone"}

	record := Normalize(payload, metadata.PlatformYouTube, "u", testProv("oembed", false), testNow)
	assert.NotNil(t, record.Hashtags)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"hashtags":[]`), string(data))
}

func TestParseISODuration(t *testing.T) {
	assert.Equal(t, int64(90), parseISODuration("PT1M30S"))
	assert.Equal(t, int64(3600), parseISODuration("PT1H"))
	assert.Equal(t, int64(45), parseISODuration("PT45S"))
	assert.Equal(t, int64(0), parseISODuration(""))
	assert.Equal(t, int64(0), parseISODuration("garbage"))
}
