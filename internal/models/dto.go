package models

// ResolveRequest 解析请求
type ResolveRequest struct {
	URL       string `json:"url" binding:"required"`
	SkipCache bool   `json:"skip_cache"`
}

// ValidateRequest 校验请求
type ValidateRequest struct {
	URL string `json:"url" binding:"required"`
}

// ValidateResponse 校验结果
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Platform string `json:"platform,omitempty"`
	Reason   string `json:"reason,omitempty"`
}
