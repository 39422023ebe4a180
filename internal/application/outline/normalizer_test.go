package outline

import (
	"errors"
	"strings"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n ", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.in); got != tt.want {
				t.Errorf("stripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSlideContent(t *testing.T) {
	raw := "```json\n" + `{
		"title": "Kernel Memory Management",
		"content": ["- Paging divides memory into fixed-size frames mapped by the page table",
			"• Virtual addresses translate to physical frames through multi-level lookups",
			"Page faults trigger demand loading from backing storage on first access"],
		"image_query": "memory management diagram",
		"notes": "Explain TLB caching here."
	}` + "\n```"

	sc, err := parseSlideContent(raw)
	if err != nil {
		t.Fatalf("parseSlideContent() error = %v", err)
	}
	if sc.Title != "Kernel Memory Management" {
		t.Errorf("title = %q", sc.Title)
	}
	if len(sc.Content) != 3 {
		t.Fatalf("got %d bullets, want 3", len(sc.Content))
	}
	for i, b := range sc.Content {
		if strings.HasPrefix(b, "-") || strings.HasPrefix(b, "•") {
			t.Errorf("bullet %d keeps leading marker: %q", i, b)
		}
	}
	if sc.ImageQuery != "memory management diagram" {
		t.Errorf("image_query = %q", sc.ImageQuery)
	}
}

func TestParseSlideContentMalformed(t *testing.T) {
	for _, raw := range []string{"not json at all", `{"title":"x","content":[]}`, ""} {
		if _, err := parseSlideContent(raw); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("parseSlideContent(%q) error = %v, want ErrMalformedResponse", raw, err)
		}
	}
}

func TestCleanBullets(t *testing.T) {
	long := strings.Repeat("word ", 40)

	tests := []struct {
		name      string
		in        []string
		wantCount int
		check     func(t *testing.T, out []string)
	}{
		{
			"pads to minimum",
			[]string{"only one bullet provided"},
			3,
			func(t *testing.T, out []string) {
				if out[1] != fillerBullet || out[2] != fillerBullet {
					t.Errorf("missing filler padding: %v", out)
				}
			},
		},
		{
			"truncates to maximum",
			[]string{"one", "two", "three", "four", "five"},
			4,
			nil,
		},
		{
			"word-limits long bullets",
			[]string{long, long, long},
			3,
			func(t *testing.T, out []string) {
				for _, b := range out {
					if n := len(strings.Fields(b)); n > maxBulletWords {
						t.Errorf("bullet has %d words, want <= %d", n, maxBulletWords)
					}
				}
			},
		},
		{
			"drops empty after trim",
			[]string{"  - ", "real bullet content here", "another real bullet"},
			3,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := cleanBullets(tt.in)
			if len(out) != tt.wantCount {
				t.Fatalf("got %d bullets, want %d: %v", len(out), tt.wantCount, out)
			}
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestParseTopics(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"object form", `{"topics":["A","B","C"]}`, 3, false},
		{"bare array", `["A","B"]`, 2, false},
		{"fenced object", "```json\n{\"topics\":[\"A\"]}\n```", 1, false},
		{"empty topics", `{"topics":[]}`, 0, true},
		{"garbage", "no structure here", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics, err := parseTopics(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTopics() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(topics) != tt.want {
				t.Errorf("got %d topics, want %d", len(topics), tt.want)
			}
		})
	}
}

func TestParseTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"Soft Computing: Concepts"`, "Soft Computing: Concepts"},
		{"  Plain Title \n", "Plain Title"},
		{`'Quoted Title'`, "Quoted Title"},
	}
	for _, tt := range tests {
		if got := parseTitle(tt.in); got != tt.want {
			t.Errorf("parseTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstWords(t *testing.T) {
	if got := firstWords("one two three four five six", 5); got != "one two three four five" {
		t.Errorf("firstWords() = %q", got)
	}
	if got := firstWords("short", 5); got != "short" {
		t.Errorf("firstWords() = %q", got)
	}
}
