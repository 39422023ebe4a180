package outline

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"autoslidex-api/internal/domain/entity"
	"autoslidex-api/pkg/errors"
	"autoslidex-api/pkg/logger"
	"autoslidex-api/pkg/metrics"
	"autoslidex-api/pkg/retry"
)

// maxTitleWords 演示文稿标题的词数上限
const maxTitleWords = 8

// recordingGenerator 统计底层调用成功率，用于区分"全部失败"与"部分降级"
type recordingGenerator struct {
	inner     TextGenerator
	calls     atomic.Int64
	successes atomic.Int64
}

func (r *recordingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	r.calls.Add(1)
	out, err := r.inner.Generate(ctx, prompt)
	if err == nil {
		r.successes.Add(1)
	}
	return out, err
}

// Builder 大纲构建器，负责标题、主题列表、逐页内容的生成与质量闭环
type Builder struct {
	generator   TextGenerator
	classifier  *Classifier
	maxAttempts int
	maxSlides   int
}

// NewBuilder 创建大纲构建器
func NewBuilder(generator TextGenerator, classifier *Classifier, maxAttempts, maxSlides int) *Builder {
	if maxAttempts <= 0 {
		maxAttempts = retry.DefaultMaxAttempts
	}
	if maxSlides <= 0 {
		maxSlides = 20
	}
	return &Builder{
		generator:   generator,
		classifier:  classifier,
		maxAttempts: maxAttempts,
		maxSlides:   maxSlides,
	}
}

// MaxSlides 返回允许的最大页数
func (b *Builder) MaxSlides() int { return b.maxSlides }

// Build 为给定主题生成完整大纲，保证返回的幻灯片数量精确等于 numSlides
// 单次生成失败走降级路径；所有底层调用全部失败时返回生成失败错误且不产出大纲
func (b *Builder) Build(ctx context.Context, topic string, numSlides int, additionalContext string) (*entity.Presentation, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New(errors.CodeInvalidParam, "topic is required")
	}
	if numSlides < 1 || numSlides > b.maxSlides {
		return nil, errors.New(errors.CodeInvalidParam,
			fmt.Sprintf("num_slides must be between 1 and %d", b.maxSlides))
	}

	start := time.Now()
	rec := &recordingGenerator{inner: b.generator}

	title := b.buildTitle(ctx, rec, topic, additionalContext)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topics, err := b.buildTopics(ctx, rec, topic, numSlides, additionalContext)
	if err != nil {
		return nil, err
	}

	slides, err := b.buildSlides(ctx, rec, topics, topic, additionalContext)
	if err != nil {
		return nil, err
	}

	controller := NewController(rec, b.classifier, b.maxAttempts)
	regenerated, err := controller.Enforce(ctx, slides, topic, additionalContext)
	if err != nil {
		return nil, err
	}

	// 模型一次都没成功时整体失败，避免持久化纯降级产物
	if rec.calls.Load() > 0 && rec.successes.Load() == 0 {
		metrics.OutlineGenerationTotal.WithLabelValues("failed").Inc()
		return nil, errors.New(errors.CodeGenerationFailed,
			"outline generation failed: model unavailable")
	}

	// 扫描后再次核对页数，偏差就地修复，多退少补，不向调用方暴露
	if len(slides) != numSlides {
		logger.Warn(ctx, "slide count drifted after quality sweeps, correcting",
			"got", len(slides), "want", numSlides)
		slides = conformSlideCount(slides, topic, numSlides)
	}

	p := entity.NewPresentation(topic, title, slides)

	metrics.OutlineGenerationTotal.WithLabelValues("success").Inc()
	metrics.OutlineGenerationDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	logger.Info(ctx, "outline generated",
		"presentation_id", p.ID,
		"num_slides", numSlides,
		"regenerated_slides", len(regenerated),
		"duration", time.Since(start).String())

	return p, nil
}

// buildTitle 生成演示文稿标题，失败时降级为主题前 5 个单词
func (b *Builder) buildTitle(ctx context.Context, gen TextGenerator, topic, additionalContext string) string {
	title, _ := retry.DoWithFallback(ctx, b.maxAttempts,
		func(ctx context.Context) (string, error) {
			raw, err := gen.Generate(ctx, titlePrompt(topic, additionalContext))
			if err != nil {
				return "", err
			}
			t := parseTitle(raw)
			if t == "" {
				return "", fmt.Errorf("%w: empty title", ErrMalformedResponse)
			}
			return t, nil
		},
		nil,
		func() string {
			logger.Warn(ctx, "title generation exhausted, deriving title from topic")
			return firstWords(topic, 5)
		},
	)
	if title == "" {
		title = firstWords(topic, 5)
	}
	// 超长标题截断到词数上限
	if words := strings.Fields(title); len(words) > maxTitleWords {
		title = strings.Join(words[:maxTitleWords], " ")
	}
	return title
}

// buildTopics 生成精确数量的主题列表，失败时降级为确定性主题阶梯
func (b *Builder) buildTopics(ctx context.Context, gen TextGenerator, topic string, numSlides int, additionalContext string) ([]string, error) {
	topics, err := retry.DoWithFallback(ctx, b.maxAttempts,
		func(ctx context.Context) ([]string, error) {
			raw, err := gen.Generate(ctx, topicsPrompt(topic, numSlides, additionalContext))
			if err != nil {
				return nil, err
			}
			return parseTopics(raw)
		},
		nil,
		func() []string {
			logger.Warn(ctx, "topic generation exhausted, using fallback ladder", "num_slides", numSlides)
			return fallbackTopics(topic, numSlides)
		},
	)
	if err != nil {
		return nil, err
	}
	return forceTopicCount(topics, topic, numSlides), nil
}

// buildSlides 按主题顺序生成逐页内容，每页以此前已接受的页面为负向上下文
func (b *Builder) buildSlides(ctx context.Context, gen TextGenerator, topics []string, topic, additionalContext string) ([]entity.Slide, error) {
	slides := make([]entity.Slide, 0, len(topics))

	for i, slideTopic := range topics {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slideNumber := i + 1
		prompt := contentPrompt(slideTopic, slideNumber, len(topics), topic, additionalContext, slides)

		sc, err := retry.DoWithFallback(ctx, b.maxAttempts,
			func(ctx context.Context) (*slideContent, error) {
				raw, err := gen.Generate(ctx, prompt)
				if err != nil {
					return nil, err
				}
				return parseSlideContent(raw)
			},
			nil,
			func() *slideContent {
				metrics.SlideFallbackTotal.Inc()
				logger.Warn(ctx, "slide content generation exhausted, using fallback",
					"slide_number", slideNumber, "slide_topic", slideTopic)
				return fallbackContent(slideTopic, topic)
			},
		)
		if err != nil {
			return nil, err
		}

		slideTitle := sc.Title
		if strings.TrimSpace(slideTitle) == "" {
			slideTitle = slideTopic
		}

		slides = append(slides, entity.Slide{
			SlideNumber: slideNumber,
			Title:       slideTitle,
			Content:     sc.Content,
			LayoutType:  entity.LayoutTypeContent,
			ImageQuery:  sc.ImageQuery,
			Notes:       sc.Notes,
		})
	}

	return slides, nil
}
