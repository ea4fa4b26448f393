package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id, err := Generate(PrefixReview)
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerate_Format(t *testing.T) {
	for _, prefix := range []string{PrefixBook, PrefixReview, PrefixShelf, PrefixUser} {
		t.Run(prefix, func(t *testing.T) {
			id, err := Generate(prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, prefix+"-"))
			assert.Len(t, id, len(prefix)+1+21)
			assert.True(t, HasPrefix(id, prefix))
		})
	}
}

func TestMustGenerate(t *testing.T) {
	id := MustGenerate(PrefixShelf)
	assert.True(t, HasPrefix(id, PrefixShelf))
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("book-abc", "book"))
	assert.False(t, HasPrefix("book-", "book"))
	assert.False(t, HasPrefix("rev-abc", "book"))
	assert.False(t, HasPrefix("bookabc", "book"))
}

func BenchmarkGenerate(b *testing.B) {
	for b.Loop() {
		_, _ = Generate(PrefixBook)
	}
}
