package utils

import (
	"errors"
	"net/http"
)

var (
	// URL相关错误
	ErrInvalidURL          = errors.New("invalid URL")
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// 策略级错误(由链执行器内部恢复,不直接暴露给调用方)
	ErrMissingCredential = errors.New("credential not configured")
	ErrRateLimited       = errors.New("rate limited by remote service")
	ErrNotFound          = errors.New("video not found")
	ErrMalformedResponse = errors.New("malformed response from remote service")
	ErrNetwork           = errors.New("network error")

	// 系统相关错误
	ErrCacheMiss = errors.New("cache miss")
)

// MapHTTPStatusError 将远端HTTP状态码映射到策略级错误
//
// 约定:
// - 401/403 归入限流类:YouTube等平台在配额耗尽或密钥被拒时返回403,
//   两种情况对链执行器的处理方式相同(跳到下一策略并记录)
// - 拿不准的一律按网络错误处理,保证失败种类始终落在已知分类内
func MapHTTPStatusError(statusCode int) error {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrRateLimited
	case statusCode == http.StatusNotFound || statusCode == http.StatusGone:
		return ErrNotFound
	case statusCode == http.StatusBadRequest:
		return ErrNotFound
	case statusCode >= 500:
		return ErrNetwork
	default:
		return ErrNetwork
	}
}

// FailureKind 返回策略级失败的分类名(用于诊断链路)
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrNetwork):
		return "network_error"
	default:
		return "unknown"
	}
}
