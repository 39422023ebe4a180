package outline

import (
	"fmt"
	"strings"

	"autoslidex-api/internal/domain/entity"
)

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

// titlePrompt 构造标题生成提示词，要求不超过 8 个单词
func titlePrompt(topic, additionalContext string) string {
	return fmt.Sprintf(`Create a SHORT, professional presentation title for: "%s"
Additional context: %s

RULES:
1. Maximum 8 words (prefer 3-6 words)
2. Clear, concise and professional
3. Return ONLY the title, nothing else

Example:
Topic: "Introduction to Soft Computing, Historical Development, Definitions, advantages and disadvantages"
Good: "Soft Computing: Concepts and Applications"`, topic, orNone(additionalContext))
}

// topicsPrompt 构造主题列表生成提示词，强制精确数量与均衡覆盖
func topicsPrompt(topic string, numSlides int, additionalContext string) string {
	return fmt.Sprintf(`You are creating a comprehensive presentation outline for: "%s"
Additional context: %s

REQUIREMENTS:
1. Generate EXACTLY %d slide topics (no more, no less)
2. Cover ALL major aspects of the subject, distributed equally across slides
3. Slide 1 introduces the subject, the last slide concludes it
4. Each topic is specific and descriptive, 3-8 words, professional terminology

Return ONLY a valid JSON object with this exact format:
{
  "topics": ["Topic 1 title", "Topic 2 title", ...]
}

NO explanations, NO markdown, ONLY the JSON object.`, topic, orNone(additionalContext), numSlides)
}

// negativeContext 将已接受的幻灯片渲染为禁止重复的上下文片段
func negativeContext(slides []entity.Slide, exclude int) string {
	var sb strings.Builder
	for _, s := range slides {
		if s.SlideNumber == exclude {
			continue
		}
		sb.WriteString(fmt.Sprintf("- Slide %d %q: %s\n", s.SlideNumber, s.Title, s.JoinedContent()))
	}
	if sb.Len() == 0 {
		return ""
	}
	return fmt.Sprintf(`
CONTENT ALREADY COVERED ON OTHER SLIDES (do NOT repeat any of this information):
%s
Every bullet you write must present NEW information not listed above.
`, sb.String())
}

// contentPrompt 构造单页内容生成提示词，携带已接受页面作为负向上下文
func contentPrompt(slideTitle string, slideNumber, totalSlides int, topic, additionalContext string, prior []entity.Slide) string {
	return fmt.Sprintf(`Create PROFESSIONAL slide content for a presentation about: "%s"

Slide #%d of %d
Slide Title: "%s"
Additional Context: %s

REQUIREMENTS:
1. Create EXACTLY 3-4 bullet points (3 for simple topics, 4 for complex ones)
2. Each bullet is 10-20 words with specific details, examples and context
3. Use technical terminology appropriately; make content informative and educational
4. Do NOT copy phrasing from the topic text; explain it in original words
%s
IMAGE QUERY: short search terms for a relevant technical diagram or photo, add "diagram illustration" for technical topics.

SPEAKER NOTES: 3-5 sentences with deeper explanation and real-world examples.

Return ONLY valid JSON (no markdown):
{
    "title": "%s",
    "content": ["...", "...", "..."],
    "image_query": "...",
    "notes": "..."
}`, topic, slideNumber, totalSlides, slideTitle, orNone(additionalContext), negativeContext(prior, slideNumber), slideTitle)
}

// regenPrompt 构造重新生成提示词，使用更强的约束与禁用短语列表
func regenPrompt(slideTitle string, slideNumber, totalSlides int, topic, additionalContext string, others []entity.Slide, excludeNumber int) string {
	return fmt.Sprintf(`Create DETAILED, PROFESSIONAL slide content for: "%s"

Slide #%d of %d
Slide Title: "%s"
Additional Context: %s

CRITICAL REQUIREMENTS:
1. Create EXACTLY 3-4 bullet points with REAL, DETAILED information
2. Each bullet MUST be 12-20 words with specific details, examples or data
3. NO generic filler phrases of any kind

FORBIDDEN PHRASES (DO NOT USE):
- "Key concept about this topic"
- "Important aspect to consider"
- "Related insight or application"
- "Key point"
- "Additional insight"
%s
Return ONLY valid JSON:
{
    "title": "%s",
    "content": ["...", "...", "..."],
    "image_query": "specific technical diagram search terms",
    "notes": "Detailed speaker notes with examples and technical context"
}`, topic, slideNumber, totalSlides, slideTitle, orNone(additionalContext), negativeContext(others, excludeNumber), slideTitle)
}
