package outline

import (
	"strings"
	"testing"
)

func TestIsGeneric(t *testing.T) {
	c := NewClassifier(0, 0)

	good := []string{
		"Transformer attention layers compute weighted relevance across every token pair in the input sequence",
		"Positional encodings inject order information using sinusoidal functions at varying frequencies per dimension",
		"Multi-head attention projects queries keys and values into parallel subspaces before concatenation",
	}

	tests := []struct {
		name    string
		content []string
		want    bool
	}{
		{"solid content", good, false},
		{"too few bullets", good[:2], true},
		{"denylist phrase", []string{good[0], good[1], "This is a key concept about the subject matter here today"}, true},
		{"too short", []string{good[0], good[1], "Short bullet here now"}, true},
		{"low unique words", []string{good[0], good[1], "data data data data data data value value value value"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := c.IsGeneric(tt.content)
			if got != tt.want {
				t.Errorf("IsGeneric() = %v (reason %q), want %v", got, reason, tt.want)
			}
			if got && reason == "" {
				t.Error("flagged content must carry a diagnostic reason")
			}
		})
	}
}

func TestHasVerbatimRepetition(t *testing.T) {
	c := NewClassifier(0, 0)
	topic := "Introduction to Soft Computing and Historical Development"

	tests := []struct {
		name    string
		content []string
		want    bool
	}{
		{
			"original wording",
			[]string{"Fuzzy logic systems tolerate imprecision by mapping inputs onto graded membership functions"},
			false,
		},
		{
			"echoes topic phrase",
			[]string{"This slide covers introduction to soft computing and its many uses in industry"},
			true,
		},
		{
			"known bad phrase",
			[]string{"Important aspect to consider when designing these systems for production use"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := c.HasVerbatimRepetition(tt.content, topic)
			if got != tt.want {
				t.Errorf("HasVerbatimRepetition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	c := NewClassifier(0, 0)

	a := []string{"Neural networks learn hierarchical feature representations from labelled training examples"}
	b := []string{"Quarterly revenue projections depend on seasonal retail demand fluctuations"}

	if got := c.Similarity(a, a); got < 0.99 {
		t.Errorf("identical content similarity = %v, want ~1.0", got)
	}
	if got := c.Similarity(a, b); got != 0 {
		t.Errorf("disjoint content similarity = %v, want 0", got)
	}
	if got := c.Similarity(nil, nil); got != 0 {
		t.Errorf("empty content similarity = %v, want 0", got)
	}
}

func TestSimilarityDegenerateContent(t *testing.T) {
	c := NewClassifier(0, 0)

	// 全部为短词或停用词，有效词集合为空，退化为整词集合比较
	a := []string{"AI is on the up and we go far now"}
	b := []string{"it as to be or not up"}

	if got := c.Similarity(a, a); got < 0.99 {
		t.Errorf("identical degenerate content similarity = %v, want ~1.0", got)
	}
	if got := c.Similarity(a, b); got >= SimilarityDetectThreshold {
		t.Errorf("mostly disjoint degenerate content similarity = %v, want below %v",
			got, SimilarityDetectThreshold)
	}

	dup := make([]string, len(a))
	copy(dup, a)
	pairs := c.DetectDuplicates([][]string{a, b, dup})
	if len(pairs) != 1 || pairs[0].I != 0 || pairs[0].J != 2 {
		t.Errorf("identical degenerate slides must be flagged as duplicates, got %+v", pairs)
	}
}

func TestSimilaritySharedShingleBoost(t *testing.T) {
	c := NewClassifier(0, 0)

	// 共享多个 3 连词短语但词集不完全相同
	a := []string{
		"distributed consensus protocols coordinate replica state machines",
		"leader election algorithms handle network partition recovery gracefully",
		"quorum intersection guarantees ensure linearizable write ordering",
	}
	b := []string{
		"distributed consensus protocols coordinate cluster membership changes",
		"leader election algorithms handle failover events without downtime",
		"quorum intersection guarantees prevent conflicting commit decisions",
	}

	base := c.Similarity(a, b)
	if base <= 0.3 {
		t.Fatalf("expected substantial overlap, got %v", base)
	}
	// 三个共享 3 连词短语应触发加成
	if sharedShingles(strings.Join(a, " "), strings.Join(b, " ")) <= sharedShingleFloor {
		t.Fatal("test fixture must share more than two 3-word shingles")
	}
}

func TestDetectDuplicates(t *testing.T) {
	c := NewClassifier(0, 0)

	unique1 := []string{"Container orchestration schedules workloads across heterogeneous compute nodes automatically"}
	unique2 := []string{"Financial derivatives pricing models incorporate stochastic volatility assumptions"}
	near1 := []string{"Database indexing strategies accelerate query execution through sorted lookup structures"}
	near2 := []string{"Database indexing strategies accelerate query execution using sorted lookup structures"}

	pairs := c.DetectDuplicates([][]string{unique1, near1, unique2, near2})
	if len(pairs) != 1 {
		t.Fatalf("expected 1 duplicate pair, got %d: %+v", len(pairs), pairs)
	}
	p := pairs[0]
	if p.I != 1 || p.J != 3 {
		t.Errorf("pair indices = (%d,%d), want (1,3)", p.I, p.J)
	}
	if p.Score < SimilarityDetectThreshold {
		t.Errorf("pair score %v below detect threshold", p.Score)
	}
}
