package detector

import (
	"net/url"
	"strings"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/utils"
)

// domainEntry 平台域名表的一行
type domainEntry struct {
	platform metadata.Platform
	domains  []string
}

// PlatformDetector 平台检测器
type PlatformDetector struct {
	table []domainEntry
}

// NewPlatformDetector 创建平台检测器
//
// 域名表按平台互不相交,表序不影响结果。
func NewPlatformDetector() *PlatformDetector {
	return &PlatformDetector{
		table: []domainEntry{
			{metadata.PlatformYouTube, []string{"youtube.com", "youtu.be"}},
			{metadata.PlatformTikTok, []string{"tiktok.com", "vm.tiktok.com"}},
			{metadata.PlatformInstagram, []string{"instagram.com"}},
		},
	}
}

// Detect 检测URL所属平台
//
// 无法解析的URL与未知域名返回同一个错误:调用方不需要(也不应该)
// 区分这两种情况。不发起任何网络请求。
func (d *PlatformDetector) Detect(rawURL string) (metadata.Platform, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", utils.ErrUnsupportedPlatform
	}

	host := strings.ToLower(u.Hostname())

	for _, entry := range d.table {
		for _, domain := range entry.domains {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return entry.platform, nil
			}
		}
	}

	return "", utils.ErrUnsupportedPlatform
}
