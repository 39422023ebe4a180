package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const pixabayBaseURL = "https://pixabay.com/api/"

// PixabayProvider Pixabay 图片提供商
// 图示类查询优先检索矢量图和插画，普通查询检索照片
type PixabayProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewPixabayProvider 创建 Pixabay 提供商
func NewPixabayProvider(apiKey string, client *http.Client) *PixabayProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &PixabayProvider{
		apiKey:     apiKey,
		httpClient: client,
		baseURL:    pixabayBaseURL,
	}
}

// Name 提供商名称
func (p *PixabayProvider) Name() string { return "pixabay" }

type pixabayResponse struct {
	Hits []pixabayHit `json:"hits"`
}

type pixabayHit struct {
	Type          string `json:"type"`
	LargeImageURL string `json:"largeImageURL"`
}

// Lookup 检索并下载图片
func (p *PixabayProvider) Lookup(ctx context.Context, query string) ([]byte, error) {
	if p.apiKey == "" {
		return nil, ErrNoImage
	}
	if query == "" {
		query = "business presentation"
	}

	isDiagram := IsDiagramQuery(query)
	imageType := "photo"
	editorsChoice := "false"
	if isDiagram {
		imageType = "vector,illustration"
		editorsChoice = "true"
	}

	hits, err := p.search(ctx, query, imageType, editorsChoice)
	if err != nil {
		return nil, err
	}

	// 图示类无插画结果时放宽到全部类型重试一次
	if len(hits) == 0 && isDiagram {
		hits, err = p.search(ctx, query, "all", "false")
		if err != nil {
			return nil, err
		}
	}
	if len(hits) == 0 {
		return nil, ErrNoImage
	}

	best := hits[0]
	if isDiagram {
		for _, hit := range hits {
			if hit.Type == "vector" {
				best = hit
				break
			}
		}
	}

	return downloadImage(ctx, p.httpClient, best.LargeImageURL)
}

func (p *PixabayProvider) search(ctx context.Context, query, imageType, editorsChoice string) ([]pixabayHit, error) {
	params := url.Values{}
	params.Set("key", p.apiKey)
	params.Set("q", query)
	params.Set("image_type", imageType)
	params.Set("orientation", "horizontal")
	params.Set("per_page", "5")
	params.Set("safesearch", "true")
	params.Set("min_width", "1200")
	params.Set("editors_choice", editorsChoice)

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
		return nil, fmt.Errorf("pixabay api error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var searchResp pixabayResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return searchResp.Hits, nil
}
