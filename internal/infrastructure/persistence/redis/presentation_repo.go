package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"autoslidex-api/internal/domain/entity"
	"autoslidex-api/internal/domain/repository"
)

const presentationKeyPrefix = "presentation:"

// PresentationRepo 基于 Redis 的演示文稿仓储
// 单键整体读写 JSON 值，保证读取不会观察到部分写入的幻灯片列表
type PresentationRepo struct {
	client *Client
}

// NewPresentationRepo 创建演示文稿仓储
func NewPresentationRepo(client *Client) *PresentationRepo {
	return &PresentationRepo{client: client}
}

func presentationKey(id string) string {
	return presentationKeyPrefix + id
}

// Save 保存演示文稿（新建或整体覆盖）
func (r *PresentationRepo) Save(ctx context.Context, p *entity.Presentation) error {
	ctx, span := tracer.Start(ctx, "repo.Save",
		trace.WithAttributes(attribute.String("presentation.id", p.ID)))
	defer span.End()

	data, err := json.Marshal(p)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal presentation: %w", err)
	}

	if err := r.client.rdb.Set(ctx, presentationKey(p.ID), data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save presentation: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取演示文稿
func (r *PresentationRepo) GetByID(ctx context.Context, id string) (*entity.Presentation, error) {
	ctx, span := tracer.Start(ctx, "repo.GetByID",
		trace.WithAttributes(attribute.String("presentation.id", id)))
	defer span.End()

	data, err := r.client.rdb.Get(ctx, presentationKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get presentation: %w", err)
	}

	var p entity.Presentation
	if err := json.Unmarshal(data, &p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to unmarshal presentation: %w", err)
	}
	return &p, nil
}

// Delete 删除演示文稿
func (r *PresentationRepo) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "repo.Delete",
		trace.WithAttributes(attribute.String("presentation.id", id)))
	defer span.End()

	deleted, err := r.client.rdb.Del(ctx, presentationKey(id)).Result()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete presentation: %w", err)
	}
	if deleted == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count 当前存储的演示文稿数量
func (r *PresentationRepo) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repo.Count")
	defer span.End()

	var count int64
	iter := r.client.rdb.Scan(ctx, 0, presentationKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		span.RecordError(err)
		return 0, err
	}
	return count, nil
}
