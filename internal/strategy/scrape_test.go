package strategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/utils"
)

func scrapeServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 必须带浏览器UA
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
}

func TestExtractJSONBlob(t *testing.T) {
	html := []byte(`<script>var ytInitialPlayerResponse = {"a": {"b": "с }{ tricky"}, "c": 1};var other = 2;</script>`)

	blob := extractJSONBlob(html, "ytInitialPlayerResponse")
	require.NotNil(t, blob)
	assert.Equal(t, `{"a": {"b": "с }{ tricky"}, "c": 1}`, string(blob))

	assert.Nil(t, extractJSONBlob([]byte("no marker here"), "ytInitialPlayerResponse"))
	assert.Nil(t, extractJSONBlob([]byte("ytInitialPlayerResponse = [1,2]"), "ytInitialPlayerResponse"))
}

func TestScrapeYouTubeStateBlob(t *testing.T) {
	html := `<html><script>
	var ytInitialPlayerResponse = {"videoDetails": {
		"title": "Scraped Title",
		"shortDescription": "desc #tag",
		"lengthSeconds": "212",
		"viewCount": "123456",
		"author": "Some Author",
		"channelId": "UC1",
		"thumbnail": {"thumbnails": [{"url": "small.jpg"}, {"url": "large.jpg"}]}
	}};</script></html>`
	server := scrapeServer(t, html)
	defer server.Close()

	s := NewScrapeStrategy(metadata.PlatformYouTube, testClient(), zap.NewNop())

	payload, err := s.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	sp := payload.(*ScrapePayload)
	assert.True(t, sp.FromStateBlob)
	assert.Equal(t, "Scraped Title", sp.Title)
	assert.Equal(t, int64(123456), sp.Views)
	assert.Equal(t, int64(212), sp.DurationSeconds)
	assert.Equal(t, "Some Author", sp.AuthorName)
	assert.Equal(t, "large.jpg", sp.ThumbnailURL)
}

func TestScrapeTikTokUniversalData(t *testing.T) {
	html := `<html><script id="__UNIVERSAL_DATA_FOR_REHYDRATION__" type="application/json">
	{"__DEFAULT_SCOPE__": {"webapp.video-detail": {"itemInfo": {"itemStruct": {
		"desc": "dance video #fyp",
		"createTime": "1700000000",
		"video": {"duration": 15, "cover": "cover.jpg"},
		"author": {"uniqueId": "dancer", "nickname": "Dancer", "verified": true},
		"stats": {"playCount": 99000, "diggCount": 8000, "commentCount": 120, "shareCount": 45},
		"authorStats": {"followerCount": 10000}
	}}}}}</script></html>`
	server := scrapeServer(t, html)
	defer server.Close()

	s := NewScrapeStrategy(metadata.PlatformTikTok, testClient(), zap.NewNop())

	payload, err := s.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	sp := payload.(*ScrapePayload)
	assert.True(t, sp.FromStateBlob)
	assert.Equal(t, "dance video #fyp", sp.Title)
	assert.Equal(t, int64(99000), sp.Views)
	assert.Equal(t, int64(8000), sp.Likes)
	assert.Equal(t, "dancer", sp.AuthorHandle)
	assert.True(t, sp.AuthorVerified)
	assert.Equal(t, int64(10000), sp.AuthorFollowers)
	assert.Equal(t, int64(1700000000), sp.CreateTime)
}

func TestScrapeSigiStateFallback(t *testing.T) {
	html := `<html><script>window['SIGI_STATE'] = {"ItemModule": {"123": {
		"desc": "old layout clip",
		"createTime": "1600000000",
		"video": {"duration": 9, "cover": "c.jpg"},
		"author": {"uniqueId": "olduser", "nickname": "Old User"},
		"stats": {"playCount": 500, "diggCount": 50, "commentCount": 5, "shareCount": 1}
	}}};</script></html>`
	server := scrapeServer(t, html)
	defer server.Close()

	s := NewScrapeStrategy(metadata.PlatformTikTok, testClient(), zap.NewNop())

	payload, err := s.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	sp := payload.(*ScrapePayload)
	assert.True(t, sp.FromStateBlob)
	assert.Equal(t, "old layout clip", sp.Title)
	assert.Equal(t, "olduser", sp.AuthorHandle)
}

func TestScrapeOpenGraphFallback(t *testing.T) {
	// blob缺失或损坏时降级到og标签,而不是失败
	html := `<html><head>
	<meta property="og:title" content="OG Title" />
	<meta property="og:description" content="OG description #promo" />
	<meta property="og:image" content="https://cdn.example/og.jpg" />
	</head><body><script>var ytInitialPlayerResponse = broken{;</script></body></html>`
	server := scrapeServer(t, html)
	defer server.Close()

	s := NewScrapeStrategy(metadata.PlatformYouTube, testClient(), zap.NewNop())

	payload, err := s.Extract(context.Background(), server.URL)
	require.NoError(t, err)

	sp := payload.(*ScrapePayload)
	assert.False(t, sp.FromStateBlob)
	assert.Equal(t, "OG Title", sp.Title)
	assert.Equal(t, "OG description #promo", sp.Description)
	assert.Equal(t, "https://cdn.example/og.jpg", sp.ThumbnailURL)
	assert.Equal(t, int64(0), sp.Views)
}

func TestScrapeNothingUsable(t *testing.T) {
	server := scrapeServer(t, `<html><head><title>x</title></head><body></body></html>`)
	defer server.Close()

	s := NewScrapeStrategy(metadata.PlatformInstagram, testClient(), zap.NewNop())

	_, err := s.Extract(context.Background(), server.URL)
	assert.ErrorIs(t, err, utils.ErrMalformedResponse)
}

func TestScrapeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := NewScrapeStrategy(metadata.PlatformTikTok, testClient(), zap.NewNop())

	_, err := s.Extract(context.Background(), server.URL)
	assert.ErrorIs(t, err, utils.ErrRateLimited)
}
