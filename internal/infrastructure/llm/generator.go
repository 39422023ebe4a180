package llm

import (
	"context"
	"time"

	"autoslidex-api/internal/config"
	"autoslidex-api/pkg/errors"
	"autoslidex-api/pkg/metrics"

	"github.com/cloudwego/eino/schema"
)

// Generator 基于 Eino ChatModel 的文本生成客户端
// 一次调用对应一次完整响应，不使用流式输出
type Generator struct {
	factory  *Factory
	provider string
	model    string
}

// NewGenerator 创建默认提供商的文本生成客户端
func NewGenerator(factory *Factory, cfg *config.Config) *Generator {
	provider := cfg.LLM.DefaultProvider
	modelName := ""
	if providerCfg, ok := cfg.LLM.Providers[provider]; ok {
		modelName = providerCfg.Model
	}
	return &Generator{
		factory:  factory,
		provider: provider,
		model:    modelName,
	}
}

// Generate 发送提示词并返回完整文本响应
// 传输层失败统一包装为 CodeLLMProviderError
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	chatModel, err := g.factory.Default(ctx)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeLLMProviderError, "llm provider unavailable")
	}

	start := time.Now()
	resp, err := chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	metrics.LLMCallDuration.WithLabelValues(g.provider, g.model).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		return "", errors.Wrap(err, errors.CodeLLMProviderError, "llm call failed")
	}

	metrics.LLMCallTotal.WithLabelValues(g.provider, g.model, "ok").Inc()
	return resp.Content, nil
}
