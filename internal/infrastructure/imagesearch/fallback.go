package imagesearch

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
)

// UnsplashProvider Unsplash Source 提供商，无需 API 密钥
type UnsplashProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewUnsplashProvider 创建 Unsplash 提供商
func NewUnsplashProvider(client *http.Client) *UnsplashProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &UnsplashProvider{
		httpClient: client,
		baseURL:    "https://source.unsplash.com",
	}
}

// Name 提供商名称
func (p *UnsplashProvider) Name() string { return "unsplash" }

// Lookup 按查询词获取一张图片
func (p *UnsplashProvider) Lookup(ctx context.Context, query string) ([]byte, error) {
	if query == "" {
		query = "technology"
	}
	cleanQuery := strings.ReplaceAll(query, " ", ",")
	imageURL := fmt.Sprintf("%s/1600x900/?%s", p.baseURL, cleanQuery)
	return downloadImage(ctx, p.httpClient, imageURL)
}

// PicsumProvider Lorem Picsum 兜底提供商，按查询词哈希取种子保证稳定
type PicsumProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewPicsumProvider 创建 Picsum 兜底提供商
func NewPicsumProvider(client *http.Client) *PicsumProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &PicsumProvider{
		httpClient: client,
		baseURL:    "https://picsum.photos",
	}
}

// Name 提供商名称
func (p *PicsumProvider) Name() string { return "picsum" }

// Lookup 获取种子化的占位图片
func (p *PicsumProvider) Lookup(ctx context.Context, query string) ([]byte, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(query))
	seed := h.Sum32() % 1000

	imageURL := fmt.Sprintf("%s/seed/%d/1600/900", p.baseURL, seed)
	data, err := downloadImage(ctx, p.httpClient, imageURL)
	if err == nil {
		return data, nil
	}

	// 种子请求失败时退回到无种子的随机图
	return downloadImage(ctx, p.httpClient, fmt.Sprintf("%s/1600/900", p.baseURL))
}
