// Package presentation 编排大纲生成、存储与渲染的应用服务
package presentation

import (
	"context"
	"fmt"
	"strings"

	"autoslidex-api/internal/application/outline"
	"autoslidex-api/internal/application/pptx"
	"autoslidex-api/internal/domain/entity"
	"autoslidex-api/internal/domain/repository"
	"autoslidex-api/pkg/errors"
	"autoslidex-api/pkg/logger"
	"autoslidex-api/pkg/tracer"
)

// FileStore 渲染产物存储接口
type FileStore interface {
	Save(filename string, data []byte) (string, error)
	Path(filename string) string
	Exists(path string) bool
	Remove(path string) error
}

// Service 演示文稿应用服务
type Service struct {
	repo     repository.PresentationRepository
	builder  *outline.Builder
	renderer *pptx.Renderer
	store    FileStore
}

// NewService 创建应用服务
func NewService(repo repository.PresentationRepository, builder *outline.Builder, renderer *pptx.Renderer, store FileStore) *Service {
	return &Service{
		repo:     repo,
		builder:  builder,
		renderer: renderer,
		store:    store,
	}
}

// MaxSlides 返回单次请求允许的最大页数
func (s *Service) MaxSlides() int { return s.builder.MaxSlides() }

// GenerateOutline 生成大纲并持久化
func (s *Service) GenerateOutline(ctx context.Context, topic string, numSlides int, additionalContext string) (_ *entity.Presentation, err error) {
	ctx, span := tracer.StartPipeline(ctx, "generate_outline", "")
	defer func() { tracer.End(span, err) }()

	p, err := s.builder.Build(ctx, topic, numSlides, additionalContext)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithContext(ctx, logger.PresentationIDKey, p.ID)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, errors.Wrap(err, errors.CodeCacheError, "failed to persist outline")
	}
	return p, nil
}

// Get 按 ID 读取演示文稿
func (s *Service) Get(ctx context.Context, id string) (*entity.Presentation, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.New(errors.CodePresentationNotFound, "presentation not found")
		}
		return nil, errors.Wrap(err, errors.CodeCacheError, "failed to load presentation")
	}
	return p, nil
}

// UpdateSlides 整体替换幻灯片并重新编号
// 已渲染的文件随之失效并删除，下载前需重新渲染
func (s *Service) UpdateSlides(ctx context.Context, id string, slides []entity.Slide) (*entity.Presentation, error) {
	if len(slides) == 0 {
		return nil, errors.New(errors.CodeInvalidParam, "slides must not be empty")
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.PPTXPath != "" {
		if err := s.store.Remove(p.PPTXPath); err != nil {
			logger.Warn(ctx, "failed to remove stale rendered file", "path", p.PPTXPath, "error", err)
		}
		p.PPTXPath = ""
	}

	p.ReplaceSlides(slides)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, errors.Wrap(err, errors.CodeCacheError, "failed to persist updated slides")
	}
	return p, nil
}

// Render 渲染演示文稿为 PPTX 文件并记录产物路径
func (s *Service) Render(ctx context.Context, id, template string) (_ *entity.Presentation, err error) {
	ctx, span := tracer.StartPipeline(ctx, "render", id)
	defer func() { tracer.End(span, err) }()

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithContext(ctx, logger.PresentationIDKey, p.ID)
	data, err := s.renderer.Render(ctx, p, template)
	if err != nil {
		return nil, err
	}

	path, err := s.store.Save(fmt.Sprintf("%s.pptx", p.ID), data)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorageError, "failed to store rendered file")
	}

	p.MarkRendered(path)
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, errors.Wrap(err, errors.CodeCacheError, "failed to persist render state")
	}
	return p, nil
}

// DownloadInfo 下载所需信息：文件路径与对外文件名
type DownloadInfo struct {
	Path     string
	Filename string
}

// Download 校验渲染状态并返回文件信息
// 未渲染返回 400 语义错误，文件丢失返回 404 语义错误
func (s *Service) Download(ctx context.Context, id string) (*DownloadInfo, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsRendered() {
		return nil, errors.New(errors.CodeNotRendered, "presentation has not been rendered yet")
	}
	if !s.store.Exists(p.PPTXPath) {
		return nil, errors.New(errors.CodeFileNotFound, "rendered file not found")
	}

	filename := strings.TrimSpace(p.Title)
	if filename == "" {
		filename = p.ID
	}
	return &DownloadInfo{
		Path:     p.PPTXPath,
		Filename: fmt.Sprintf("%s.pptx", filename),
	}, nil
}

// Delete 删除演示文稿及其渲染产物
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if p.PPTXPath != "" {
		if err := s.store.Remove(p.PPTXPath); err != nil {
			logger.Warn(ctx, "failed to remove rendered file", "path", p.PPTXPath, "error", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return errors.New(errors.CodePresentationNotFound, "presentation not found")
		}
		return errors.Wrap(err, errors.CodeCacheError, "failed to delete presentation")
	}
	return nil
}

// Count 返回当前存储的演示文稿数量
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeCacheError, "failed to count presentations")
	}
	return n, nil
}
