package outline

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse 清理后的模型输出不是合法的结构化数据
var ErrMalformedResponse = errors.New("malformed model response")

// 要点数量与长度的规整边界
const (
	minBullets     = 3
	maxBullets     = 4
	maxBulletWords = 25

	// fillerBullet 低信息量的补位要点，后续质量检测会将其识别为生成缺陷
	fillerBullet = "Additional key insight to explore further"
)

// slideContent 模型返回的单页内容结构
type slideContent struct {
	Title      string   `json:"title"`
	Content    []string `json:"content"`
	ImageQuery string   `json:"image_query"`
	Notes      string   `json:"notes"`
}

// stripCodeFence 去掉包裹响应的单层 Markdown 代码栅栏
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = s[7:]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}
	return strings.TrimSpace(s)
}

// parseSlideContent 解析单页内容响应并规整要点
func parseSlideContent(raw string) (*slideContent, error) {
	cleaned := stripCodeFence(raw)

	var sc slideContent
	if err := json.Unmarshal([]byte(cleaned), &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(sc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}

	sc.Content = cleanBullets(sc.Content)
	return &sc, nil
}

// parseTopics 解析主题列表响应，接受对象或裸数组两种形式
func parseTopics(raw string) ([]string, error) {
	cleaned := stripCodeFence(raw)

	var obj struct {
		Topics []string `json:"topics"`
	}
	if err := json.Unmarshal([]byte(cleaned), &obj); err == nil && len(obj.Topics) > 0 {
		return obj.Topics, nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(cleaned), &arr); err == nil && len(arr) > 0 {
		return arr, nil
	}

	return nil, fmt.Errorf("%w: no topics array", ErrMalformedResponse)
}

// parseTitle 清理标题响应，去掉引号包装
func parseTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.ReplaceAll(title, `"`, "")
	title = strings.ReplaceAll(title, "'", "")
	return strings.TrimSpace(title)
}

// cleanBullets 将要点列表规整到 [3,4] 条，逐条去掉前导符号并按词数截断
func cleanBullets(bullets []string) []string {
	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}

	cleaned := make([]string, 0, maxBullets)
	for _, bullet := range bullets {
		b := strings.TrimSpace(bullet)
		b = strings.TrimLeft(b, "•-–—*> \t")
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		words := strings.Fields(b)
		if len(words) > maxBulletWords {
			words = words[:maxBulletWords]
			b = strings.Join(words, " ")
		}
		cleaned = append(cleaned, b)
	}

	for len(cleaned) < minBullets {
		cleaned = append(cleaned, fillerBullet)
	}
	return cleaned
}

// firstWords 取文本的前 n 个单词
func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
