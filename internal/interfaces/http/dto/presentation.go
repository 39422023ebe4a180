package dto

import (
	"autoslidex-api/internal/domain/entity"
)

// GenerateOutlineRequest 生成大纲请求
type GenerateOutlineRequest struct {
	Topic             string `json:"topic" binding:"required"`
	NumSlides         int    `json:"num_slides" binding:"required"`
	AdditionalContext string `json:"additional_context"`
}

// SlideInput 客户端提交的单页内容
type SlideInput struct {
	Title      string   `json:"title" binding:"required"`
	Content    []string `json:"content" binding:"required"`
	LayoutType string   `json:"layout_type"`
	ImageQuery string   `json:"image_query"`
	Notes      string   `json:"notes"`
}

// UpdateSlidesRequest 整体替换幻灯片请求
type UpdateSlidesRequest struct {
	PresentationID string       `json:"presentation_id" binding:"required"`
	Slides         []SlideInput `json:"slides" binding:"required"`
}

// GeneratePPTRequest 渲染请求
type GeneratePPTRequest struct {
	PresentationID string `json:"presentation_id" binding:"required"`
	Template       string `json:"template"`
}

// GeneratePPTResponse 渲染响应
type GeneratePPTResponse struct {
	PresentationID string `json:"presentation_id"`
	DownloadURL    string `json:"download_url"`
	FilePath       string `json:"file_path"`
}

// ToSlides 将提交的幻灯片转换为领域实体，编号由实体层统一重排
func (r *UpdateSlidesRequest) ToSlides() []entity.Slide {
	slides := make([]entity.Slide, 0, len(r.Slides))
	for _, in := range r.Slides {
		layout := entity.LayoutType(in.LayoutType)
		if layout == "" {
			layout = entity.LayoutTypeContent
		}
		slides = append(slides, entity.Slide{
			Title:      in.Title,
			Content:    in.Content,
			LayoutType: layout,
			ImageQuery: in.ImageQuery,
			Notes:      in.Notes,
		})
	}
	return slides
}
