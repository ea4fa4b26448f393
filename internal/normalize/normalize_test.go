package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Science Fiction":    "science-fiction",
		"Sci-Fi/Fantasy":     "sci-fi-fantasy",
		"  Café Crème  ":     "cafe-creme",
		"Go!!  Programming": "go-programming",
		"日本語":                "",
		"":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSubjects(t *testing.T) {
	got := Subjects([]string{"Distributed Systems", "distributed-systems", "", "Go", "!!!"})
	assert.Equal(t, []string{"distributed-systems", "go"}, got)
}

func TestAuthors(t *testing.T) {
	got := Authors([]string{" Alan  Donovan ", "Brian Kernighan", "", "Alan Donovan"})
	assert.Equal(t, []string{"Alan Donovan", "Brian Kernighan"}, got)
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "plain text", Description("  plain text "))
	assert.Equal(t, "a < b", Description("a < b"))
	assert.Equal(t, "**bold** move", Description("<p><strong>bold</strong> move</p>"))
}

func TestISBN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"978-0-13-419044-0", "9780134190440"},
		{"0-13-419044-0", "9780134190440"},
		{"0-8044-2957-X", "9780804429573"},
		{"080442957x", "9780804429573"},
		{"9780134190441", ""},
		{"0134190441", ""},
		{"12345", ""},
		{"97801341904X0", ""},
		{"isbn 9780134190440", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ISBN(tt.in), "input %q", tt.in)
	}
}
