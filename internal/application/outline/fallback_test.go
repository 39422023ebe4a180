package outline

import (
	"strings"
	"testing"

	"autoslidex-api/internal/domain/entity"
)

func TestFallbackContentReferencesTitleAndTopic(t *testing.T) {
	sc := fallbackContent("Broken", "api gateways")

	if len(sc.Content) != minBullets {
		t.Fatalf("fallback content has %d bullets, want %d", len(sc.Content), minBullets)
	}
	for _, bullet := range sc.Content {
		// 标题和主题都是单词时也必须满足词数下限
		if words := tokenize(bullet); len(words) < minBulletWordCount {
			t.Errorf("bullet %q has %d words, floor is %d", bullet, len(words), minBulletWordCount)
		}
		if !strings.Contains(bullet, "Broken") {
			t.Errorf("bullet %q must reference the slide title", bullet)
		}
		if !strings.Contains(bullet, "api gateways") {
			t.Errorf("bullet %q must reference the main topic", bullet)
		}
	}
	if !strings.Contains(sc.Notes, "api gateways") {
		t.Errorf("notes must reference the main topic: %q", sc.Notes)
	}
}

func TestConformSlideCountPads(t *testing.T) {
	topic := "edge computing deployment patterns"
	slides := conformSlideCount([]entity.Slide{
		slideWith(1, "Only Slide", richContents[0]),
	}, topic, 3)

	if len(slides) != 3 {
		t.Fatalf("got %d slides, want 3", len(slides))
	}
	for i, s := range slides {
		if s.SlideNumber != i+1 {
			t.Errorf("slide %d numbered %d, want %d", i, s.SlideNumber, i+1)
		}
	}
	if slides[0].Title != "Only Slide" {
		t.Errorf("existing slide must stay first, got %q", slides[0].Title)
	}
	for _, s := range slides[1:] {
		if !strings.Contains(s.Title, "Additional Insights") {
			t.Errorf("padded slide title = %q", s.Title)
		}
		if !strings.Contains(s.Content[0], topic) {
			t.Errorf("padded slide content must reference the topic: %v", s.Content)
		}
	}
}

func TestConformSlideCountTruncates(t *testing.T) {
	slides := conformSlideCount([]entity.Slide{
		slideWith(1, "A", richContents[0]),
		slideWith(2, "B", richContents[1]),
		slideWith(3, "C", richContents[2]),
	}, "stream processing", 2)

	if len(slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(slides))
	}
	if slides[0].Title != "A" || slides[1].Title != "B" {
		t.Errorf("truncation must keep the leading slides: %q, %q", slides[0].Title, slides[1].Title)
	}
	if slides[0].SlideNumber != 1 || slides[1].SlideNumber != 2 {
		t.Errorf("slides not renumbered: %d, %d", slides[0].SlideNumber, slides[1].SlideNumber)
	}
}
