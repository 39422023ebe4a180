package outline

import (
	"context"
	"fmt"

	"autoslidex-api/internal/domain/entity"
	"autoslidex-api/pkg/logger"
	"autoslidex-api/pkg/metrics"
	"autoslidex-api/pkg/retry"
)

// 重新生成原因，同时作为指标标签
const (
	reasonVerbatim   = "verbatim"
	reasonSimilarity = "similarity"
	reasonGeneric    = "generic"
)

// Controller 质量闭环控制器，对已生成的大纲执行三轮一次性质量扫描
// 每轮各自独立：逐字复读、相邻重复、占位内容。单轮内对每页至多
// 重新生成一次，不做不动点迭代，保证延迟上界可预测
type Controller struct {
	generator   TextGenerator
	classifier  *Classifier
	maxAttempts int
}

// NewController 创建质量闭环控制器
func NewController(generator TextGenerator, classifier *Classifier, maxAttempts int) *Controller {
	if maxAttempts <= 0 {
		maxAttempts = retry.DefaultMaxAttempts
	}
	return &Controller{
		generator:   generator,
		classifier:  classifier,
		maxAttempts: maxAttempts,
	}
}

// Enforce 按固定顺序执行三轮质量扫描并就地修复 slides
// 返回被重新生成过的页码集合，供调用方记录审计信息
func (c *Controller) Enforce(ctx context.Context, slides []entity.Slide, topic, additionalContext string) (map[int]bool, error) {
	regenerated := make(map[int]bool)

	// 第一轮：逐字复读扫描
	for i := range slides {
		if err := ctx.Err(); err != nil {
			return regenerated, err
		}
		bad, why := c.classifier.HasVerbatimRepetition(slides[i].Content, topic)
		if !bad {
			continue
		}
		logger.Info(ctx, "slide failed verbatim check, regenerating",
			"slide_number", slides[i].SlideNumber, "reason", why)
		if err := c.regenerateSlide(ctx, slides, i, topic, additionalContext, reasonVerbatim); err != nil {
			return regenerated, err
		}
		regenerated[slides[i].SlideNumber] = true
	}

	// 第二轮：重复内容扫描。重复对只计算一次，强制重新生成只作用于
	// 后序页，且跳过本轮已重新生成过的页面
	contents := make([][]string, len(slides))
	for i := range slides {
		contents[i] = slides[i].Content
	}
	touched := make(map[int]bool)
	for _, pair := range c.classifier.DetectDuplicates(contents) {
		if err := ctx.Err(); err != nil {
			return regenerated, err
		}
		logger.Info(ctx, "duplicate slide pair detected",
			"slide_a", slides[pair.I].SlideNumber,
			"slide_b", slides[pair.J].SlideNumber,
			"score", fmt.Sprintf("%.2f", pair.Score))
		if pair.Score <= c.classifier.RegenThreshold() || touched[pair.J] {
			continue
		}
		if err := c.regenerateSlide(ctx, slides, pair.J, topic, additionalContext, reasonSimilarity); err != nil {
			return regenerated, err
		}
		touched[pair.J] = true
		regenerated[slides[pair.J].SlideNumber] = true
	}

	// 第三轮：占位内容扫描
	for i := range slides {
		if err := ctx.Err(); err != nil {
			return regenerated, err
		}
		generic, why := c.classifier.IsGeneric(slides[i].Content)
		if !generic {
			continue
		}
		logger.Info(ctx, "slide flagged as generic, regenerating",
			"slide_number", slides[i].SlideNumber, "reason", why)
		if err := c.regenerateSlide(ctx, slides, i, topic, additionalContext, reasonGeneric); err != nil {
			return regenerated, err
		}
		regenerated[slides[i].SlideNumber] = true
	}

	return regenerated, nil
}

// regenerateSlide 以强化提示词重新生成第 i 页，负向上下文携带其余所有页面
// 重试耗尽后降级为确定性占位内容，保持管线不中断
func (c *Controller) regenerateSlide(ctx context.Context, slides []entity.Slide, i int, topic, additionalContext, reason string) error {
	metrics.SlideRegenerationTotal.WithLabelValues(reason).Inc()

	slide := &slides[i]
	prompt := regenPrompt(slide.Title, slide.SlideNumber, len(slides), topic, additionalContext, slides, slide.SlideNumber)

	sc, err := retry.DoWithFallback(ctx, c.maxAttempts,
		func(ctx context.Context) (*slideContent, error) {
			raw, err := c.generator.Generate(ctx, prompt)
			if err != nil {
				return nil, err
			}
			return parseSlideContent(raw)
		},
		func(sc *slideContent) error {
			if bad, why := c.classifier.HasVerbatimRepetition(sc.Content, topic); bad {
				return fmt.Errorf("regenerated content failed verbatim check: %s", why)
			}
			return nil
		},
		func() *slideContent {
			metrics.SlideFallbackTotal.Inc()
			logger.Warn(ctx, "slide regeneration exhausted, using fallback content",
				"slide_number", slide.SlideNumber, "reason", reason)
			return fallbackContent(slide.Title, topic)
		},
	)
	if err != nil {
		return err
	}

	slide.Content = sc.Content
	if sc.ImageQuery != "" {
		slide.ImageQuery = sc.ImageQuery
	}
	if sc.Notes != "" {
		slide.Notes = sc.Notes
	}
	return nil
}
