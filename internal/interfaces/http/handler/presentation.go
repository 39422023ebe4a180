// Package handler 提供 HTTP 请求处理器
package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"autoslidex-api/internal/application/presentation"
	"autoslidex-api/internal/interfaces/http/dto"
	"autoslidex-api/pkg/errors"
	"autoslidex-api/pkg/logger"
)

// PresentationHandler 演示文稿处理器
type PresentationHandler struct {
	svc *presentation.Service
}

// NewPresentationHandler 创建演示文稿处理器
func NewPresentationHandler(svc *presentation.Service) *PresentationHandler {
	return &PresentationHandler{svc: svc}
}

// GenerateOutline 生成大纲
// POST /api/generate-outline
func (h *PresentationHandler) GenerateOutline(c *gin.Context) {
	var req dto.GenerateOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.NumSlides < 1 || req.NumSlides > h.svc.MaxSlides() {
		dto.BadRequest(c, fmt.Sprintf("num_slides must be between 1 and %d", h.svc.MaxSlides()))
		return
	}

	p, err := h.svc.GenerateOutline(c.Request.Context(), req.Topic, req.NumSlides, req.AdditionalContext)
	if err != nil {
		logger.Error(c.Request.Context(), "outline generation failed", err, "topic", req.Topic)
		dto.FromAppError(c, err)
		return
	}

	dto.Success(c, p)
}

// Get 查询演示文稿
// GET /api/presentation/:id
func (h *PresentationHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, p)
}

// UpdateSlides 整体替换幻灯片
// PUT /api/update-slides
func (h *PresentationHandler) UpdateSlides(c *gin.Context) {
	var req dto.UpdateSlidesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, fmt.Sprintf("invalid request: %v", err))
		return
	}

	p, err := h.svc.UpdateSlides(c.Request.Context(), req.PresentationID, req.ToSlides())
	if err != nil {
		dto.FromAppError(c, err)
		return
	}
	dto.Success(c, p)
}

// GeneratePPT 渲染演示文稿
// POST /api/generate-ppt
func (h *PresentationHandler) GeneratePPT(c *gin.Context) {
	var req dto.GeneratePPTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, fmt.Sprintf("invalid request: %v", err))
		return
	}

	p, err := h.svc.Render(c.Request.Context(), req.PresentationID, req.Template)
	if err != nil {
		logger.Error(c.Request.Context(), "render failed", err, "presentation_id", req.PresentationID)
		dto.FromAppError(c, err)
		return
	}

	dto.Success(c, dto.GeneratePPTResponse{
		PresentationID: p.ID,
		DownloadURL:    fmt.Sprintf("/api/download/%s", p.ID),
		FilePath:       p.PPTXPath,
	})
}

// Download 下载渲染产物
// GET /api/download/:id
func (h *PresentationHandler) Download(c *gin.Context) {
	info, err := h.svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.FromAppError(c, err)
		return
	}

	c.FileAttachment(info.Path, info.Filename)
}

// Delete 删除演示文稿
// DELETE /api/presentation/:id
func (h *PresentationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, errors.CodePresentationNotFound) {
			dto.NotFound(c, "presentation not found")
			return
		}
		dto.FromAppError(c, err)
		return
	}
	dto.NoContent(c)
}
