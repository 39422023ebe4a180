package outline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"autoslidex-api/internal/domain/entity"
)

func slideWith(n int, title string, content []string) entity.Slide {
	return entity.Slide{
		SlideNumber: n,
		Title:       title,
		Content:     content,
		LayoutType:  entity.LayoutTypeContent,
	}
}

func TestEnforceRegeneratesGenericSlide(t *testing.T) {
	gen := &fakeGenerator{respond: func(g *fakeGenerator, prompt string) (string, error) {
		g.content++
		return contentJSON(g.content-1, "Improved Slide"), nil
	}}
	ctrl := NewController(gen, NewClassifier(0, 0), 3)

	slides := []entity.Slide{
		slideWith(1, "Solid", richContents[0]),
		slideWith(2, "Generic", []string{"Key point one", "Key point two", "Key point three"}),
	}

	regenerated, err := ctrl.Enforce(context.Background(), slides, "event streaming platforms", "")
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if !regenerated[2] {
		t.Error("generic slide 2 must be regenerated")
	}
	if regenerated[1] {
		t.Error("solid slide 1 must not be regenerated")
	}
	joined := strings.ToLower(strings.Join(slides[1].Content, " "))
	if strings.Contains(joined, "key point") {
		t.Errorf("generic content survived regeneration: %v", slides[1].Content)
	}
}

func TestEnforceRegeneratesLaterDuplicateOnly(t *testing.T) {
	gen := &fakeGenerator{respond: func(g *fakeGenerator, prompt string) (string, error) {
		return contentJSON(3, "Rewritten Slide"), nil
	}}
	ctrl := NewController(gen, NewClassifier(0, 0), 3)

	dup := []string{
		"Streaming joins correlate events across partitioned topics within bounded time windows",
		"Watermarks bound event-time lateness so windows can close deterministically under disorder",
		"Changelog topics rebuild local state stores after instance failures or rebalances",
	}
	dupCopy := make([]string, len(dup))
	copy(dupCopy, dup)

	slides := []entity.Slide{
		slideWith(1, "Original", dup),
		slideWith(2, "Duplicate", dupCopy),
	}

	regenerated, err := ctrl.Enforce(context.Background(), slides, "stream processing", "")
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if regenerated[1] {
		t.Error("earlier slide of a duplicate pair must stay untouched")
	}
	if !regenerated[2] {
		t.Error("later slide of a duplicate pair must be regenerated")
	}
	if slides[0].Content[0] != dup[0] {
		t.Error("slide 1 content changed")
	}
	if slides[1].Content[0] == dup[0] {
		t.Error("slide 2 content unchanged after regeneration")
	}
}

func TestEnforceFallsBackAfterExhaustedRetries(t *testing.T) {
	gen := &fakeGenerator{respond: func(*fakeGenerator, string) (string, error) {
		return "", errors.New("model offline")
	}}
	ctrl := NewController(gen, NewClassifier(0, 0), 2)

	slides := []entity.Slide{
		slideWith(1, "Broken", []string{"Key point one", "Key point two", "Key point three"}),
	}

	regenerated, err := ctrl.Enforce(context.Background(), slides, "api gateways", "")
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if !regenerated[1] {
		t.Error("slide must be marked regenerated even when degraded to fallback")
	}
	if len(slides[0].Content) != 3 {
		t.Errorf("fallback must keep 3 bullets, got %d", len(slides[0].Content))
	}
	// 降级内容保持可识别的占位措辞，并同时引用页标题与演示主题
	if !strings.Contains(slides[0].Content[0], "Broken") {
		t.Errorf("fallback content must reference the slide title: %v", slides[0].Content)
	}
	if !strings.Contains(slides[0].Content[0], "api gateways") {
		t.Errorf("fallback content must reference the main topic: %v", slides[0].Content)
	}
	for _, bullet := range slides[0].Content {
		if words := tokenize(bullet); len(words) < minBulletWordCount {
			t.Errorf("fallback bullet %q has %d words, floor is %d", bullet, len(words), minBulletWordCount)
		}
	}
}
