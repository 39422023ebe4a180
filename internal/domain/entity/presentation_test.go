package entity

import "testing"

func TestNewPresentation(t *testing.T) {
	slides := []Slide{
		{SlideNumber: 1, Title: "A", Content: []string{"x"}},
		{SlideNumber: 2, Title: "B", Content: []string{"y"}},
	}
	p := NewPresentation("topic", "Title", slides)

	if p.ID == "" {
		t.Error("ID must be assigned")
	}
	if p.Status != PresentationStatusDraft {
		t.Errorf("status = %q, want draft", p.Status)
	}
	if p.NumSlides != 2 {
		t.Errorf("NumSlides = %d", p.NumSlides)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps must be set")
	}
}

func TestReplaceSlidesRenumbers(t *testing.T) {
	p := NewPresentation("topic", "Title", []Slide{{SlideNumber: 1, Title: "Old"}})

	p.ReplaceSlides([]Slide{
		{SlideNumber: 9, Title: "First"},
		{SlideNumber: 2, Title: "Second"},
		{SlideNumber: 2, Title: "Third"},
	})

	if p.NumSlides != 3 {
		t.Fatalf("NumSlides = %d, want 3", p.NumSlides)
	}
	for i, s := range p.Slides {
		if s.SlideNumber != i+1 {
			t.Errorf("slide %d numbered %d, want %d", i, s.SlideNumber, i+1)
		}
	}
	if p.Status != PresentationStatusUpdated {
		t.Errorf("status = %q, want updated", p.Status)
	}
}

func TestMarkRendered(t *testing.T) {
	p := NewPresentation("topic", "Title", nil)
	if p.IsRendered() {
		t.Error("new presentation must not be rendered")
	}

	p.MarkRendered("out/file.pptx")
	if !p.IsRendered() {
		t.Error("IsRendered() = false after MarkRendered")
	}
	if p.Status != PresentationStatusCompleted {
		t.Errorf("status = %q, want completed", p.Status)
	}
}

func TestJoinedContent(t *testing.T) {
	s := Slide{Content: []string{"alpha", "beta", "gamma"}}
	if got := s.JoinedContent(); got != "alpha beta gamma" {
		t.Errorf("JoinedContent() = %q", got)
	}
}
