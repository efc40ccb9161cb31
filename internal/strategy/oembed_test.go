package strategy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/utils"
)

func oembedEndpoints(serverURL string) map[metadata.Platform]string {
	return map[metadata.Platform]string{
		metadata.PlatformYouTube:   serverURL,
		metadata.PlatformTikTok:    serverURL,
		metadata.PlatformInstagram: serverURL,
	}
}

func TestOEmbedExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://www.tiktok.com/@u/video/1", r.URL.Query().Get("url"))
		w.Write([]byte(`{
			"title": "a clip",
			"author_name": "Creator",
			"author_url": "https://www.tiktok.com/@creator",
			"thumbnail_url": "https://cdn.example/t.jpg",
			"provider_name": "TikTok"
		}`))
	}))
	defer server.Close()

	s := NewOEmbedStrategy(metadata.PlatformTikTok, oembedEndpoints(server.URL), testClient())

	payload, err := s.Extract(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.NoError(t, err)

	oe, ok := payload.(*OEmbedPayload)
	require.True(t, ok)
	assert.Equal(t, "a clip", oe.Title)
	assert.Equal(t, "Creator", oe.AuthorName)
	assert.Equal(t, "https://cdn.example/t.jpg", oe.ThumbnailURL)
}

func TestOEmbedNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	s := NewOEmbedStrategy(metadata.PlatformYouTube, oembedEndpoints(server.URL), testClient())

	_, err := s.Extract(context.Background(), "https://youtu.be/gone")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestOEmbedEmptyEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	s := NewOEmbedStrategy(metadata.PlatformYouTube, oembedEndpoints(server.URL), testClient())

	_, err := s.Extract(context.Background(), "https://youtu.be/x")
	assert.ErrorIs(t, err, utils.ErrMalformedResponse)
}

func TestOEmbedBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	s := NewOEmbedStrategy(metadata.PlatformYouTube, oembedEndpoints(server.URL), testClient())

	_, err := s.Extract(context.Background(), "https://youtu.be/x")
	assert.ErrorIs(t, err, utils.ErrMalformedResponse)
}
