package summary

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/kailas-cloud/explorer/internal/domain/search"
)

func TestBuildContext_Format(t *testing.T) {
	results := []search.Result{
		search.NewResult("First", "https://a.example", "alpha"),
		search.NewResult("Second", "https://b.example", "beta"),
	}

	got := BuildContext(results, DefaultSnippetBudget)
	want := "Source: First\nContent: alpha\n\nSource: Second\nContent: beta"
	assert.Equal(t, want, got)
}

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil, DefaultSnippetBudget))
}

func TestBuildContext_Truncation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"shorter than budget", strings.Repeat("a", 999), strings.Repeat("a", 999)},
		{"exactly budget", strings.Repeat("a", 1000), strings.Repeat("a", 1000)},
		{"longer than budget", strings.Repeat("a", 1001), strings.Repeat("a", 1000)},
		{"much longer", strings.Repeat("b", 5000), strings.Repeat("b", 1000)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildContext([]search.Result{search.NewResult("T", "https://e.com", tc.content)}, DefaultSnippetBudget)
			assert.Equal(t, "Source: T\nContent: "+tc.want, got)
		})
	}
}

func TestTruncate_MultiByte(t *testing.T) {
	s := strings.Repeat("é", 20)

	got := truncate(s, 7)
	assert.Equal(t, 7, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, s, truncate(s, 20))
	assert.Equal(t, s, truncate(s, 0))
}
