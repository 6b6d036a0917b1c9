package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpaque_UniqueAndURLSafe(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewOpaque(32)
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
		assert.NotContains(t, tok, "+")
		assert.NotContains(t, tok, "/")
		assert.NotContains(t, tok, "=")
	}
}

func TestNewReferenceCode_Format(t *testing.T) {
	code, err := NewReferenceCode("CI", 6)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "CI-"))
	assert.Len(t, code, 9)
	for _, r := range code[3:] {
		assert.Contains(t, referenceAlphabet, string(r))
	}
}

func TestNewID_Sortable(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 27)
}
