package utils

import (
	"strings"
	"testing"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "blank line separated",
			text: "first paragraph\n\nsecond paragraph",
			want: []string{"first paragraph", "second paragraph"},
		},
		{
			name: "windows line endings",
			text: "alpha\r\n\r\nbeta",
			want: []string{"alpha", "beta"},
		},
		{
			name: "whitespace only paragraphs dropped",
			text: "alpha\n\n   \n\nbeta",
			want: []string{"alpha", "beta"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d paragraphs, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("paragraph %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTruncateOldestFitsUnchanged(t *testing.T) {
	docs := []string{"oldest", "middle", "newest"}
	got := TruncateOldest(docs, 1000)
	want := "oldest\n\nmiddle\n\nnewest"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTruncateOldestDropsWholeDocumentsFirst(t *testing.T) {
	docs := []string{
		strings.Repeat("a", 100),
		strings.Repeat("b", 100),
		strings.Repeat("c", 100),
	}
	got := TruncateOldest(docs, 210)
	if strings.Contains(got, "a") {
		t.Errorf("oldest document should have been dropped, got %q", got)
	}
	if !strings.Contains(got, "b") || !strings.Contains(got, "c") {
		t.Errorf("newer documents must survive, got %q", got)
	}
}

func TestTruncateOldestNewestSurvivesIntact(t *testing.T) {
	newest := "the newest upload body"
	docs := []string{strings.Repeat("x", 500), newest}
	got := TruncateOldest(docs, len(newest)+10)
	if !strings.Contains(got, newest) {
		t.Errorf("newest document must survive intact, got %q", got)
	}
}

func TestTruncateOldestTrimsAtParagraphBoundary(t *testing.T) {
	oldest := "para one\n\npara two\n\npara three"
	newest := strings.Repeat("n", 40)
	budget := len(newest) + 2 + len("para two\n\npara three")
	got := TruncateOldest([]string{oldest, newest}, budget)
	if strings.Contains(got, "para one") {
		t.Errorf("oldest paragraph should be trimmed, got %q", got)
	}
	if !strings.Contains(got, "para two") {
		t.Errorf("surviving paragraphs should remain, got %q", got)
	}
	if !strings.HasSuffix(got, newest) {
		t.Errorf("newest document must close the prompt body, got %q", got)
	}
}

func TestTruncateOldestSingleOversizedDocument(t *testing.T) {
	doc := "old paragraph\n\nnew paragraph"
	got := TruncateOldest([]string{doc}, len("new paragraph"))
	if got != "new paragraph" {
		t.Errorf("got %q, want %q", got, "new paragraph")
	}
}

func TestTruncateOldestCondensesDroppedContent(t *testing.T) {
	oldest := "Old news first sentence. Plus a long trailing block of detail that has to go: " + strings.Repeat("d", 80)
	newest := strings.Repeat("n", 100)
	notice := "[Earlier content, condensed] Old news first sentence."
	budget := len(notice) + 2 + len(newest)

	got := TruncateOldest([]string{oldest, newest}, budget)

	want := notice + "\n\n" + newest
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTruncateOldestCondensedBlockShrinksOldestFirst(t *testing.T) {
	first := "Alpha sentence. " + strings.Repeat("a", 80)
	second := "Beta sentence. " + strings.Repeat("b", 80)
	newest := strings.Repeat("n", 60)
	notice := "[Earlier content, condensed] Beta sentence."
	budget := len(notice) + 2 + len(newest)

	got := TruncateOldest([]string{first, second, newest}, budget)

	if !strings.Contains(got, "Beta sentence.") {
		t.Errorf("newest dropped paragraph should survive condensed, got %q", got)
	}
	if strings.Contains(got, "Alpha") {
		t.Errorf("oldest condensed sentence should be cut first, got %q", got)
	}
	if !strings.HasSuffix(got, newest) {
		t.Errorf("kept content must close the prompt body, got %q", got)
	}
}

func TestTruncateOldestZeroBudget(t *testing.T) {
	if got := TruncateOldest([]string{"anything"}, 0); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
