package utils

import (
	"regexp"
)

// MaxHashtags 单条结果保留的话题标签上限
const MaxHashtags = 15

// 匹配 # 开头的词(兼容拉丁与阿拉伯字符区间)
var hashtagPattern = regexp.MustCompile(`#[0-9A-Za-z_\x{0600}-\x{06FF}]+`)

// ExtractHashtags 从文本提取话题标签
//
// 保持首次出现顺序,按原样大小写去重,最多返回 MaxHashtags 个。
// 没有标签时返回空切片而不是nil,保证序列化结果是 [] 而不是 null。
func ExtractHashtags(text string) []string {
	if text == "" {
		return []string{}
	}

	matches := hashtagPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(matches))
	result := make([]string, 0, len(matches))
	for _, tag := range matches {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
		if len(result) >= MaxHashtags {
			break
		}
	}

	return result
}
