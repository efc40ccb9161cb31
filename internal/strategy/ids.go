package strategy

import (
	"regexp"
)

var (
	// YouTube 各种URL形态中的11位视频ID
	youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/shorts/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`)

	// TikTok 视频ID(/video/123... 或 aweme_id=123...)
	tiktokIDPattern = regexp.MustCompile(`/video/(\d+)`)
	tiktokParamID   = regexp.MustCompile(`(?i)(?:aweme_id=|item_id=)(\d+)`)

	// Instagram 帖子短码(/p/、/reel/、/tv/)
	instagramCodePattern = regexp.MustCompile(`instagram\.com/(?:p|reel|reels|tv)/([a-zA-Z0-9_-]+)`)
)

// ExtractYouTubeVideoID 从URL提取YouTube视频ID,失败返回空串
func ExtractYouTubeVideoID(rawURL string) string {
	if m := youtubeIDPattern.FindStringSubmatch(rawURL); len(m) == 2 {
		return m[1]
	}
	return ""
}

// ExtractTikTokVideoID 从URL提取TikTok视频ID,失败返回空串
//
// 短链(vm.tiktok.com)不含ID,此时返回空串,由策略自行决定
// 是否能用完整URL继续。
func ExtractTikTokVideoID(rawURL string) string {
	if m := tiktokIDPattern.FindStringSubmatch(rawURL); len(m) == 2 {
		return m[1]
	}
	if m := tiktokParamID.FindStringSubmatch(rawURL); len(m) == 2 {
		return m[1]
	}
	return ""
}

// ExtractInstagramShortcode 从URL提取Instagram帖子短码,失败返回空串
func ExtractInstagramShortcode(rawURL string) string {
	if m := instagramCodePattern.FindStringSubmatch(rawURL); len(m) == 2 {
		return m[1]
	}
	return ""
}
