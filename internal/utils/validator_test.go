package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://www.youtube.com/watch?v=abc"))
	assert.True(t, IsValidURL("http://vm.tiktok.com/xyz"))
	assert.False(t, IsValidURL(""))
	assert.False(t, IsValidURL("ftp://example.com/file"))
	assert.False(t, IsValidURL("/relative/path"))
}

func TestNormalizeURL(t *testing.T) {
	got := NormalizeURL("https://www.youtube.com/watch?v=abc&utm_source=share&si=xyz")
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", got)

	// 非追踪参数保留
	got = NormalizeURL("https://www.tiktok.com/@user/video/123?lang=en&fbclid=track")
	assert.Equal(t, "https://www.tiktok.com/@user/video/123?lang=en", got)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "a b c", SanitizeString("  a\t b \n c  "))
	assert.Equal(t, "", SanitizeString("   "))
}
