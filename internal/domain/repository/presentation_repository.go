// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"errors"

	"autoslidex-api/internal/domain/entity"
)

// ErrNotFound 未找到指定的演示文稿
var ErrNotFound = errors.New("presentation not found")

// PresentationRepository 演示文稿仓储接口
// 写入必须整体替换，读取不允许观察到部分写入的幻灯片列表
type PresentationRepository interface {
	// Save 保存演示文稿（新建或整体覆盖）
	Save(ctx context.Context, p *entity.Presentation) error

	// GetByID 根据 ID 获取演示文稿，未找到返回 ErrNotFound
	GetByID(ctx context.Context, id string) (*entity.Presentation, error)

	// Delete 删除演示文稿，未找到返回 ErrNotFound
	Delete(ctx context.Context, id string) error

	// Count 当前存储的演示文稿数量
	Count(ctx context.Context) (int64, error)
}
