package imagesearch

import "testing"

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		content  []string
		provided string
		want     string
	}{
		{
			"explicit query wins",
			"Some Title", []string{"bullet"}, "custom search terms",
			"custom search terms",
		},
		{
			"diagram pattern detected",
			"Understanding the OS Architecture", nil, "",
			"operating system architecture layers diagram",
		},
		{
			"flowchart in content",
			"Process Overview", []string{"The flowchart shows each approval step"}, "",
			"flowchart process diagram illustration",
		},
		{
			"tech topic fallback",
			"Getting Started with Python", nil, "",
			"programming code",
		},
		{
			"title keywords",
			"Quarterly Marketing Review", nil, "",
			"quarterly marketing review",
		},
		{
			"generic fallback",
			"A B C", nil, "",
			"business presentation professional",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.title, tt.content, tt.provided); got != tt.want {
				t.Errorf("BuildQuery() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsDiagramQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"UML class diagram computer", true},
		{"kubernetes architecture diagram", true},
		{"network topology illustration", true},
		{"sunset over mountains", false},
		{"business people meeting", false},
	}
	for _, tt := range tests {
		if got := IsDiagramQuery(tt.query); got != tt.want {
			t.Errorf("IsDiagramQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
