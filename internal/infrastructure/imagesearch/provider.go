// Package imagesearch 提供多提供商的图片检索与回退链
package imagesearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoImage 提供商没有找到可用图片
var ErrNoImage = errors.New("no image found")

// 下载图片时伪装浏览器 UA，部分图床拒绝非浏览器请求
const downloadUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Provider 图片提供商接口：查询进，图片字节出，或者 ErrNoImage
type Provider interface {
	// Name 提供商名称，用于日志与指标
	Name() string

	// Lookup 按查询词检索并下载一张图片
	Lookup(ctx context.Context, query string) ([]byte, error)
}

// downloadImage 下载图片字节
func downloadImage(ctx context.Context, client *http.Client, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	return data, nil
}
