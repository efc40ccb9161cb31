package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseCount 将计数值解析为非负整数
//
// 兼容各平台的两种表示:字面数字("12345"、"12,345")和紧凑后缀
// ("1.2K"、"3M"、"1B")。解析失败一律返回0,调用方不需要处理错误。
func ParseCount(raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	// 去掉千位分隔符
	s = strings.ReplaceAll(s, ",", "")

	// 紧凑后缀
	multiplier := int64(1)
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "K"):
		multiplier = 1_000
		s = s[:len(s)-1]
	case strings.HasSuffix(upper, "M"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	case strings.HasSuffix(upper, "B"):
		multiplier = 1_000_000_000
		s = s[:len(s)-1]
	}

	if multiplier > 1 {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || f < 0 {
			return 0
		}
		// 乘积超出int64的值按解析失败处理,避免转换得到负数
		if f > float64(math.MaxInt64)/float64(multiplier) {
			return 0
		}
		return int64(f * float64(multiplier))
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NonNegative 将可能为负的计数钳制为0
func NonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
