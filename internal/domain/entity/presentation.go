// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PresentationStatus 演示文稿状态
type PresentationStatus string

const (
	PresentationStatusDraft     PresentationStatus = "draft"
	PresentationStatusUpdated   PresentationStatus = "updated"
	PresentationStatusCompleted PresentationStatus = "completed"
)

// LayoutType 幻灯片版式
type LayoutType string

const (
	LayoutTypeContent   LayoutType = "content"
	LayoutTypeTitle     LayoutType = "title"
	LayoutTypeTwoColumn LayoutType = "two_column"
)

// Slide 幻灯片实体
// 幻灯片不独立持久化，生命周期完全归属所在的 Presentation
type Slide struct {
	SlideNumber int        `json:"slide_number"`
	Title       string     `json:"title"`
	Content     []string   `json:"content"`
	LayoutType  LayoutType `json:"layout_type"`
	ImageQuery  string     `json:"image_query,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// JoinedContent 返回拼接后的全部要点文本，供质量检测使用
func (s *Slide) JoinedContent() string {
	joined := ""
	for i, bullet := range s.Content {
		if i > 0 {
			joined += " "
		}
		joined += bullet
	}
	return joined
}

// Presentation 演示文稿大纲实体，持久化的唯一单元
type Presentation struct {
	ID        string             `json:"id"`
	Topic     string             `json:"topic"`
	Title     string             `json:"title"`
	NumSlides int                `json:"num_slides"`
	Slides    []Slide            `json:"slides"`
	Status    PresentationStatus `json:"status"`
	PPTXPath  string             `json:"pptx_url,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewPresentation 创建新的演示文稿大纲
func NewPresentation(topic, title string, slides []Slide) *Presentation {
	now := time.Now()
	return &Presentation{
		ID:        uuid.New().String(),
		Topic:     topic,
		Title:     title,
		NumSlides: len(slides),
		Slides:    slides,
		Status:    PresentationStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReplaceSlides 整体替换幻灯片列表并按提交顺序重新编号 1..N
func (p *Presentation) ReplaceSlides(slides []Slide) {
	for i := range slides {
		slides[i].SlideNumber = i + 1
	}
	p.Slides = slides
	p.NumSlides = len(slides)
	p.Status = PresentationStatusUpdated
	p.UpdatedAt = time.Now()
}

// MarkRendered 记录渲染产物路径并标记完成
func (p *Presentation) MarkRendered(path string) {
	p.PPTXPath = path
	p.Status = PresentationStatusCompleted
	p.UpdatedAt = time.Now()
}

// IsRendered 判断是否已渲染
func (p *Presentation) IsRendered() bool {
	return p.PPTXPath != ""
}
