package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/utils"
)

func TestDetect(t *testing.T) {
	d := NewPlatformDetector()

	tests := []struct {
		name     string
		url      string
		platform metadata.Platform
		wantErr  bool
	}{
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", metadata.PlatformYouTube, false},
		{"youtube short link", "https://youtu.be/dQw4w9WgXcQ", metadata.PlatformYouTube, false},
		{"youtube shorts", "https://youtube.com/shorts/abc12345678", metadata.PlatformYouTube, false},
		{"youtube mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", metadata.PlatformYouTube, false},
		{"uppercase host", "HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", metadata.PlatformYouTube, false},
		{"tiktok video", "https://www.tiktok.com/@user/video/7234567890123456789", metadata.PlatformTikTok, false},
		{"tiktok short link", "https://vm.tiktok.com/ZM2abcdef/", metadata.PlatformTikTok, false},
		{"instagram reel", "https://www.instagram.com/reel/Cx1abcDEfgH/", metadata.PlatformInstagram, false},
		{"instagram post", "https://instagram.com/p/Cx1abcDEfgH/?igsh=xyz", metadata.PlatformInstagram, false},
		{"unknown platform", "https://vimeo.com/12345", "", true},
		{"lookalike domain", "https://notyoutube.com/watch?v=dQw4w9WgXcQ", "", true},
		{"domain as path", "https://evil.com/youtube.com/watch", "", true},
		{"malformed url", "not a url at all", "", true},
		{"empty url", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform, err := d.Detect(tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, utils.ErrUnsupportedPlatform)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.platform, platform)
		})
	}
}
