package imagesearch

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"autoslidex-api/internal/config"
	"autoslidex-api/pkg/logger"
	"autoslidex-api/pkg/metrics"
)

// Chain 图片提供商回退链
// 图示类查询优先 Google，其余优先 Pixabay，最后统一回退 Unsplash 与 Picsum
type Chain struct {
	google   Provider
	pixabay  Provider
	unsplash Provider
	picsum   Provider
	group    singleflight.Group
}

// NewChain 按配置构建完整的回退链
func NewChain(cfg *config.ImageSearchConfig) *Chain {
	searchClient := &http.Client{Timeout: cfg.SearchTimeout}
	downloadClient := &http.Client{Timeout: cfg.DownloadTimeout}

	return &Chain{
		google:   NewGoogleProvider(cfg.Google.APIKey, cfg.Google.EngineID, searchClient),
		pixabay:  NewPixabayProvider(cfg.Pixabay.APIKey, searchClient),
		unsplash: NewUnsplashProvider(downloadClient),
		picsum:   NewPicsumProvider(downloadClient),
	}
}

// NewChainWithProviders 以显式提供商顺序构建回退链，测试用
func NewChainWithProviders(google, pixabay, unsplash, picsum Provider) *Chain {
	return &Chain{
		google:   google,
		pixabay:  pixabay,
		unsplash: unsplash,
		picsum:   picsum,
	}
}

// Lookup 按回退链依次检索，全部失败返回 ErrNoImage
// 相同查询词的并发请求通过 singleflight 合并
func (c *Chain) Lookup(ctx context.Context, query string) ([]byte, error) {
	result, err, _ := c.group.Do(query, func() (interface{}, error) {
		return c.lookup(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Chain) lookup(ctx context.Context, query string) ([]byte, error) {
	var providers []Provider
	if IsDiagramQuery(query) {
		providers = []Provider{c.google, c.pixabay, c.unsplash, c.picsum}
	} else {
		providers = []Provider{c.pixabay, c.google, c.unsplash, c.picsum}
	}

	for _, p := range providers {
		if p == nil {
			continue
		}

		start := time.Now()
		data, err := p.Lookup(ctx, query)
		metrics.ImageLookupDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

		switch {
		case err == nil && len(data) > 0:
			metrics.ImageLookupTotal.WithLabelValues(p.Name(), "hit").Inc()
			return data, nil
		case err == ErrNoImage:
			metrics.ImageLookupTotal.WithLabelValues(p.Name(), "miss").Inc()
		default:
			metrics.ImageLookupTotal.WithLabelValues(p.Name(), "error").Inc()
			logger.Warn(ctx, "image provider failed", "provider", p.Name(), "query", query, "error", err)
		}
	}

	return nil, ErrNoImage
}
