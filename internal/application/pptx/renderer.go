package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"autoslidex-api/internal/domain/entity"
	"autoslidex-api/internal/infrastructure/imagesearch"
	"autoslidex-api/pkg/errors"
	"autoslidex-api/pkg/logger"
	"autoslidex-api/pkg/metrics"
)

// ImageLookup 配图检索接口，实现方负责多提供商回退
type ImageLookup interface {
	Lookup(ctx context.Context, query string) ([]byte, error)
}

// Renderer PPTX 渲染器，将大纲实体渲染为完整的 OOXML 包
// 配图检索失败不阻断渲染，对应页面降级为纯文字布局
type Renderer struct {
	images ImageLookup
}

// NewRenderer 创建渲染器，images 传 nil 则全部页面渲染为纯文字
func NewRenderer(images ImageLookup) *Renderer {
	return &Renderer{images: images}
}

// slidePart 单页的渲染中间态
type slidePart struct {
	xml      string
	imageExt string
	image    []byte
	notes    string
}

// Render 渲染演示文稿并返回 PPTX 文件字节
// 产出结构为 1 页封面 + N 页内容页，每页内容页尝试配图
func (r *Renderer) Render(ctx context.Context, p *entity.Presentation, template string) ([]byte, error) {
	start := time.Now()
	theme := ThemeFor(template)

	total := len(p.Slides) + 1
	parts := make([]slidePart, 0, total)

	// 封面页
	coverImage := r.lookupImage(ctx, imagesearch.BuildQuery(p.Title, nil, ""))
	cover := slidePart{
		xml:   titleSlideXML(theme, p.Title, p.Topic, coverImage != nil),
		image: coverImage,
	}
	if coverImage != nil {
		cover.imageExt = imageExt(coverImage)
	}
	parts = append(parts, cover)

	// 内容页
	for i := range p.Slides {
		s := &p.Slides[i]
		img := r.lookupImage(ctx, imagesearch.BuildQuery(s.Title, s.Content, s.ImageQuery))
		part := slidePart{
			xml:   contentSlideXML(theme, s, p.Title, i+1, len(p.Slides), img != nil),
			image: img,
			notes: s.Notes,
		}
		if img != nil {
			part.imageExt = imageExt(img)
		}
		parts = append(parts, part)
	}

	data, err := assemble(p.Title, theme, parts)
	if err != nil {
		metrics.RenderTotal.WithLabelValues("failed").Inc()
		return nil, errors.Wrap(err, errors.CodeRenderFailed, "failed to assemble pptx package")
	}

	metrics.RenderTotal.WithLabelValues("success").Inc()
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	logger.Info(ctx, "pptx rendered",
		"presentation_id", p.ID,
		"slides", total,
		"template", theme.Name,
		"size_bytes", len(data),
		"duration", time.Since(start).String())

	return data, nil
}

// lookupImage 检索配图，任何失败都降级为无图
func (r *Renderer) lookupImage(ctx context.Context, query string) []byte {
	if r.images == nil || query == "" {
		return nil
	}
	data, err := r.images.Lookup(ctx, query)
	if err != nil {
		if err != imagesearch.ErrNoImage {
			logger.Warn(ctx, "image lookup failed, rendering without image", "query", query, "error", err)
		}
		return nil
	}
	return data
}

// assemble 将全部部件写入 zip 包
func assemble(title string, theme Theme, parts []slidePart) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	hasNotes := make([]bool, len(parts))
	for i, part := range parts {
		hasNotes[i] = part.notes != ""
	}

	files := map[string]string{
		"[Content_Types].xml":                         contentTypesXML(len(parts), hasNotes),
		"_rels/.rels":                                 rootRelsXML(),
		"docProps/core.xml":                           coreXML(title, time.Now()),
		"docProps/app.xml":                            appXML(len(parts)),
		"ppt/presentation.xml":                        presentationXML(len(parts)),
		"ppt/_rels/presentation.xml.rels":             presentationRelsXML(len(parts)),
		"ppt/slideMasters/slideMaster1.xml":           slideMasterXML(),
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": slideMasterRelsXML(),
		"ppt/slideLayouts/slideLayout1.xml":           slideLayoutXML(),
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels": slideLayoutRelsXML(),
		"ppt/notesMasters/notesMaster1.xml":           notesMasterXML(),
		"ppt/notesMasters/_rels/notesMaster1.xml.rels": notesMasterRelsXML(),
		"ppt/theme/theme1.xml":                        themeXML("AutoSlideX", theme),
		"ppt/theme/theme2.xml":                        themeXML("AutoSlideX Notes", theme),
	}

	for i, part := range parts {
		n := i + 1
		files[fmt.Sprintf("ppt/slides/slide%d.xml", n)] = part.xml
		files[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)] = slideRelsXML(part.image != nil, part.imageExt, n, part.notes != "")
		if part.notes != "" {
			files[fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n)] = notesSlideXML(part.notes)
			files[fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n)] = notesSlideRelsXML(n)
		}
	}

	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	for i, part := range parts {
		if part.image == nil {
			continue
		}
		name := fmt.Sprintf("ppt/media/image%d.%s", i+1, part.imageExt)
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := w.Write(part.image); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize package: %w", err)
	}
	return buf.Bytes(), nil
}

// imageExt 通过魔数判断图片扩展名，无法识别时按 jpeg 处理
func imageExt(data []byte) string {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}):
		return "png"
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("GIF8")):
		return "gif"
	default:
		return "jpeg"
	}
}
