package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"autoslidex-api/internal/domain/entity"
	"autoslidex-api/internal/infrastructure/imagesearch"
)

// stubImages 固定返回一张 PNG 的检索实现
type stubImages struct {
	data []byte
	err  error
}

func (s *stubImages) Lookup(context.Context, string) ([]byte, error) {
	return s.data, s.err
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func samplePresentation() *entity.Presentation {
	return &entity.Presentation{
		ID:    "test-id",
		Topic: "container orchestration",
		Title: "Container Orchestration in Practice",
		Slides: []entity.Slide{
			{
				SlideNumber: 1,
				Title:       "Scheduling Fundamentals",
				Content: []string{
					"Schedulers bind pods to nodes based on resource requests and affinity rules",
					"Taints and tolerations fence workloads away from dedicated node pools",
					"Priority classes let critical pods preempt lower-priority ones under pressure",
				},
				LayoutType: entity.LayoutTypeContent,
				Notes:      "Mention bin-packing strategies.",
			},
			{
				SlideNumber: 2,
				Title:       "Networking Model",
				Content: []string{
					"Every pod receives a routable IP reachable from any other pod",
					"Services provide stable virtual IPs balanced across ready endpoints",
					"Network policies restrict traffic using label-selected ingress and egress rules",
				},
				LayoutType: entity.LayoutTypeContent,
			},
		},
		NumSlides: 2,
		Status:    entity.PresentationStatusDraft,
	}
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	files := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = content
	}
	return files
}

func TestRenderProducesValidPackage(t *testing.T) {
	r := NewRenderer(&stubImages{data: append(append([]byte{}, pngMagic...), 0x01)})

	data, err := r.Render(context.Background(), samplePresentation(), "modern")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	files := readZip(t, data)

	// 封面 + 2 页内容
	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/media/image1.png",
		"ppt/notesSlides/notesSlide2.xml",
	}
	for _, name := range required {
		if _, ok := files[name]; !ok {
			t.Errorf("package missing part %s", name)
		}
	}

	if _, ok := files["ppt/slides/slide4.xml"]; ok {
		t.Error("unexpected extra slide part")
	}
	// 第 3 页（第二张内容页）没有备注
	if _, ok := files["ppt/notesSlides/notesSlide3.xml"]; ok {
		t.Error("slide without notes must not emit a notes part")
	}

	if !strings.Contains(string(files["ppt/slides/slide2.xml"]), "Scheduling Fundamentals") {
		t.Error("content slide missing its title text")
	}
	if !strings.Contains(string(files["ppt/slides/slide1.xml"]), "Container Orchestration in Practice") {
		t.Error("cover slide missing the deck title")
	}
	if !strings.Contains(string(files["ppt/presentation.xml"]), `cx="9144000" cy="6858000"`) {
		t.Error("slide size must be 10 x 7.5 inches")
	}
}

func TestRenderWithoutImages(t *testing.T) {
	r := NewRenderer(nil)

	data, err := r.Render(context.Background(), samplePresentation(), "professional")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	files := readZip(t, data)
	for name := range files {
		if strings.HasPrefix(name, "ppt/media/") {
			t.Errorf("imageless render must not emit media parts, found %s", name)
		}
	}
	// 无图内容页正文占满整行
	if !strings.Contains(string(files["ppt/slides/slide3.xml"]), "routable IP reachable") {
		t.Error("content bullets missing from text-only slide")
	}
}

func TestRenderDegradesOnLookupError(t *testing.T) {
	r := NewRenderer(&stubImages{err: imagesearch.ErrNoImage})

	data, err := r.Render(context.Background(), samplePresentation(), "creative")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	files := readZip(t, data)
	if _, ok := files["ppt/slides/slide1.xml"]; !ok {
		t.Fatal("cover slide missing")
	}
}

func TestThemeFor(t *testing.T) {
	if got := ThemeFor("professional").Name; got != "professional" {
		t.Errorf("ThemeFor(professional) = %q", got)
	}
	if got := ThemeFor("unknown-theme").Name; got != DefaultTemplate {
		t.Errorf("unknown template must fall back to %q, got %q", DefaultTemplate, got)
	}
	if got := ThemeFor("").Name; got != DefaultTemplate {
		t.Errorf("empty template must fall back to %q, got %q", DefaultTemplate, got)
	}
}

func TestImageExt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", append(append([]byte{}, pngMagic...), 1, 2), "png"},
		{"gif", []byte("GIF89a..."), "gif"},
		{"jpeg default", []byte{0xFF, 0xD8, 0xFF, 0xE0}, "jpeg"},
		{"unknown defaults jpeg", []byte("??"), "jpeg"},
	}
	for _, tt := range tests {
		if got := imageExt(tt.data); got != tt.want {
			t.Errorf("imageExt(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
