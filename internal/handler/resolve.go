package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"vcross/metadata-service/internal/models"
	"vcross/metadata-service/internal/service"
	"vcross/metadata-service/internal/utils"
)

// ResolveHandler 解析处理器
type ResolveHandler struct {
	resolver *service.ResolverService
}

// NewResolveHandler 创建解析处理器
func NewResolveHandler(resolver *service.ResolverService) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
	}
}

// Resolve 解析视频URL
//
// 错误映射:不支持的平台→400,策略链耗尽→502(带每策略原因),
// 其余→500。链耗尽时不会返回看似成功的占位数据。
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req models.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		models.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	record, err := h.resolver.ResolveVideo(c.Request.Context(), req.URL, req.SkipCache)
	if err != nil {
		var failed *service.ExtractionFailedError
		switch {
		case errors.Is(err, utils.ErrUnsupportedPlatform):
			models.BadRequest(c, "unsupported platform or malformed URL")
		case errors.As(err, &failed):
			reasons := make([]string, 0, len(failed.Attempts))
			for _, a := range failed.Attempts {
				reasons = append(reasons, fmt.Sprintf("%s=%s", a.Strategy, a.Kind))
			}
			models.BadGateway(c, "could not fetch authentic data: "+strings.Join(reasons, ", "))
		default:
			models.InternalError(c, "failed to resolve URL: "+err.Error())
		}
		return
	}

	models.Success(c, record)
}

// Validate 校验URL是否属于支持的平台
func (h *ResolveHandler) Validate(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		models.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	valid, platform, reason := h.resolver.ValidateURL(req.URL)
	models.Success(c, models.ValidateResponse{
		Valid:    valid,
		Platform: string(platform),
		Reason:   reason,
	})
}
