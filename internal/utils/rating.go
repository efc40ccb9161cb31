package utils

// CalculateRating 根据播放量与点赞量计算0-5的互动评级
//
// 互动率 = likes / views * 100,按固定阈值分档。阈值是产品约定,
// 必须与上游保持一致,不要调整。
func CalculateRating(views, likes int64) int {
	if views <= 0 {
		return 0
	}

	engagementRate := float64(likes) / float64(views) * 100

	switch {
	case engagementRate >= 10:
		return 5
	case engagementRate >= 5:
		return 4
	case engagementRate >= 2:
		return 3
	case engagementRate >= 1:
		return 2
	default:
		return 1
	}
}
