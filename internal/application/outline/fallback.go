package outline

import (
	"fmt"

	"autoslidex-api/internal/domain/entity"
)

// fallbackTopicLadder 主题生成失败时的确定性主题阶梯
// 按请求页数截取前缀，保证首页为引入、尾页为总结的叙事结构
var fallbackTopicLadder = []string{
	"Introduction and Overview",
	"Background and Context",
	"Key Concepts and Definitions",
	"Current State and Trends",
	"Core Components and Architecture",
	"Implementation Approaches",
	"Benefits and Advantages",
	"Challenges and Limitations",
	"Best Practices and Guidelines",
	"Real-World Applications",
	"Case Studies and Examples",
	"Tools and Technologies",
	"Future Directions",
	"Comparison and Alternatives",
	"Practical Recommendations",
	"Summary and Conclusion",
}

// fallbackTopics 生成恰好 numSlides 个确定性主题
func fallbackTopics(topic string, numSlides int) []string {
	topics := make([]string, 0, numSlides)
	for i := 0; i < numSlides && i < len(fallbackTopicLadder); i++ {
		topics = append(topics, fmt.Sprintf("%s: %s", firstWords(topic, 4), fallbackTopicLadder[i]))
	}
	for k := 1; len(topics) < numSlides; k++ {
		topics = append(topics, fmt.Sprintf("%s: Additional Insights #%d", firstWords(topic, 4), k))
	}
	return topics
}

// forceTopicCount 将主题列表规整到精确数量：超出截断，不足补位
func forceTopicCount(topics []string, topic string, numSlides int) []string {
	if len(topics) > numSlides {
		return topics[:numSlides]
	}
	for k := 1; len(topics) < numSlides; k++ {
		topics = append(topics, fmt.Sprintf("%s: Additional Insights #%d", firstWords(topic, 4), k))
	}
	return topics
}

// fallbackContent 单页内容生成彻底失败时的确定性降级内容
// 同时引用页标题与演示主题，固定措辞保证即使二者都是单词也能过词数下限；
// 故意保留会被占位检测识别的短语，使降级在后续环节可见
func fallbackContent(slideTitle, topic string) *slideContent {
	return &slideContent{
		Title: slideTitle,
		Content: []string{
			fmt.Sprintf("Core concepts and fundamentals of %s within the broader context of %s", slideTitle, topic),
			fmt.Sprintf("Practical applications and real world use cases connecting %s to %s", slideTitle, topic),
			fmt.Sprintf("Key benefits tradeoffs and open considerations when applying %s in %s", slideTitle, topic),
		},
		ImageQuery: slideTitle,
		Notes: fmt.Sprintf("This slide covers %s as part of a presentation on %s. Expand each point with specific examples relevant to the audience.",
			slideTitle, topic),
	}
}

// conformSlideCount 将幻灯片列表规整到精确页数：超出截断，不足以降级内容补位
// 数量偏差只在内部修复，不作为错误返回给调用方
func conformSlideCount(slides []entity.Slide, topic string, numSlides int) []entity.Slide {
	if len(slides) > numSlides {
		slides = slides[:numSlides]
	}
	for k := 1; len(slides) < numSlides; k++ {
		sc := fallbackContent(fmt.Sprintf("%s: Additional Insights #%d", firstWords(topic, 4), k), topic)
		slides = append(slides, entity.Slide{
			Title:      sc.Title,
			Content:    sc.Content,
			LayoutType: entity.LayoutTypeContent,
			ImageQuery: sc.ImageQuery,
			Notes:      sc.Notes,
		})
	}
	for i := range slides {
		slides[i].SlideNumber = i + 1
	}
	return slides
}
