// Package retry 提供有界重试与降级组合器
package retry

import (
	"context"
	"fmt"
)

// DefaultMaxAttempts 默认最大尝试次数
const DefaultMaxAttempts = 3

// Validator 校验单次结果是否可接受，返回错误则继续重试
type Validator[T any] func(T) error

// Do 执行 op 最多 maxAttempts 次，每次结果经 validate 校验。
// 全部失败时返回最后一次错误。ctx 取消立即终止。
func Do[T any](ctx context.Context, maxAttempts int, op func(context.Context) (T, error), validate Validator[T]) (T, error) {
	var zero T
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err != nil {
			lastErr = err
			continue
		}
		if validate != nil {
			if err := validate(result); err != nil {
				lastErr = err
				continue
			}
		}
		return result, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("all %d attempts exhausted", maxAttempts)
	}
	return zero, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

// DoWithFallback 同 Do，但失败时返回 fallback 的确定性结果而非错误。
// 上下文取消不走降级，直接返回取消错误。
func DoWithFallback[T any](ctx context.Context, maxAttempts int, op func(context.Context) (T, error), validate Validator[T], fallback func() T) (T, error) {
	result, err := Do(ctx, maxAttempts, op, validate)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			var zero T
			return zero, ctxErr
		}
		return fallback(), nil
	}
	return result, nil
}
