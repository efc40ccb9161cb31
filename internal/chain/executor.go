package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"vcross/metadata-service/internal/metadata"
	"vcross/metadata-service/internal/strategy"
	"vcross/metadata-service/internal/utils"
)

// Attempt 记录一次策略尝试(用于解释降级原因)
type Attempt struct {
	Strategy string // 策略标识
	Kind     string // 失败分类名
	Err      error
}

// ExhaustedError 所有策略均失败
//
// Attempts 按优先级顺序,每个配置的策略恰好一条,运维人员可以据此
// 区分"没配凭证"、"远端全挂了"和"平台改了页面结构"。
type ExhaustedError struct {
	Platform metadata.Platform
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s=%s", a.Strategy, a.Kind))
	}
	return fmt.Sprintf("all strategies exhausted for %s: %s", e.Platform, strings.Join(parts, ", "))
}

// Executor 策略链执行器
//
// 每个平台持有一条固定优先级的策略列表。严格串行执行:
// 先命中的策略越权威越便宜,后面的限流配额不该被白白消耗。
type Executor struct {
	chains map[metadata.Platform][]strategy.Strategy
	logger *zap.Logger
}

// NewExecutor 创建链执行器
func NewExecutor(chains map[metadata.Platform][]strategy.Strategy, logger *zap.Logger) *Executor {
	return &Executor{
		chains: chains,
		logger: logger,
	}
}

// Resolve 依次尝试平台的策略链,返回第一个成功的原始结果
//
// ErrMissingCredential 立即跳过不延迟;其他失败记录后继续下一策略,
// 本层不做重试退避(重试属于调用方)。全部失败返回 ExhaustedError。
func (e *Executor) Resolve(ctx context.Context, platform metadata.Platform, videoURL string) (strategy.RawPayload, strategy.Strategy, error) {
	strategies, ok := e.chains[platform]
	if !ok || len(strategies) == 0 {
		return nil, nil, &ExhaustedError{Platform: platform}
	}

	attempts := make([]Attempt, 0, len(strategies))

	for _, st := range strategies {
		payload, err := st.Extract(ctx, videoURL)
		if err == nil {
			e.logger.Info("strategy succeeded",
				zap.String("platform", string(platform)),
				zap.String("strategy", st.Name()))
			return payload, st, nil
		}

		attempts = append(attempts, Attempt{
			Strategy: st.Name(),
			Kind:     utils.FailureKind(err),
			Err:      err,
		})

		if errors.Is(err, utils.ErrMissingCredential) {
			e.logger.Debug("strategy skipped, credential not configured",
				zap.String("platform", string(platform)),
				zap.String("strategy", st.Name()))
			continue
		}

		e.logger.Warn("strategy failed, trying next",
			zap.String("platform", string(platform)),
			zap.String("strategy", st.Name()),
			zap.String("kind", utils.FailureKind(err)),
			zap.Error(err))
	}

	return nil, nil, &ExhaustedError{Platform: platform, Attempts: attempts}
}
