// Package memory 提供进程内的演示文稿存储实现，用于本地开发与测试
package memory

import (
	"context"
	"encoding/json"
	"sync"

	"autoslidex-api/internal/domain/entity"
	"autoslidex-api/internal/domain/repository"
)

// PresentationRepo 基于内存 map 的演示文稿仓储
// 整体替换写入，读取返回深拷贝，满足与 Redis 实现相同的原子性约定
type PresentationRepo struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewPresentationRepo 创建内存仓储
func NewPresentationRepo() *PresentationRepo {
	return &PresentationRepo{
		items: make(map[string][]byte),
	}
}

// Save 保存演示文稿（新建或整体覆盖）
func (r *PresentationRepo) Save(_ context.Context, p *entity.Presentation) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = data
	return nil
}

// GetByID 根据 ID 获取演示文稿
func (r *PresentationRepo) GetByID(_ context.Context, id string) (*entity.Presentation, error) {
	r.mu.RLock()
	data, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, repository.ErrNotFound
	}

	var p entity.Presentation
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete 删除演示文稿
func (r *PresentationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// Count 当前存储的演示文稿数量
func (r *PresentationRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}
