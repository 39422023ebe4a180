// Package outline 实现大纲生成与内容质量管线
package outline

import "context"

// TextGenerator 文本生成服务接口：提示词进，完整文本出
// 实现方负责传输层超时，调用方将每次调用视为可失败操作
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
