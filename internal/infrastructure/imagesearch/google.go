package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const googleBaseURL = "https://www.googleapis.com/customsearch/v1"

// GoogleProvider Google 自定义搜索图片提供商
// 技术图示类内容的首选来源
type GoogleProvider struct {
	apiKey     string
	engineID   string
	httpClient *http.Client
	baseURL    string
}

// NewGoogleProvider 创建 Google 图片搜索提供商
func NewGoogleProvider(apiKey, engineID string, client *http.Client) *GoogleProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &GoogleProvider{
		apiKey:     apiKey,
		engineID:   engineID,
		httpClient: client,
		baseURL:    googleBaseURL,
	}
}

// Name 提供商名称
func (p *GoogleProvider) Name() string { return "google" }

type googleSearchResponse struct {
	Items []googleSearchItem `json:"items"`
}

type googleSearchItem struct {
	Link string `json:"link"`
}

// Lookup 检索图片并下载，最多尝试前 3 个候选结果
func (p *GoogleProvider) Lookup(ctx context.Context, query string) ([]byte, error) {
	if p.apiKey == "" || p.engineID == "" {
		return nil, ErrNoImage
	}
	if query == "" {
		query = "technology diagram"
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("cx", p.engineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("num", "5")
	params.Set("safe", "active")
	params.Set("imgSize", "large")
	params.Set("imgType", "photo")
	params.Set("fileType", "jpg,png")

	reqURL := fmt.Sprintf("%s?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search api error: %s, body: %s", resp.Status, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var searchResp googleSearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(searchResp.Items) == 0 {
		return nil, ErrNoImage
	}

	candidates := searchResp.Items
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	for _, item := range candidates {
		data, err := downloadImage(ctx, p.httpClient, item.Link)
		if err == nil {
			return data, nil
		}
	}
	return nil, ErrNoImage
}
