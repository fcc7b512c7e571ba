package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := New()
	if err != nil {
		t.Skipf("encoding data unavailable: %v", err)
	}
	return tok
}

func TestCountTokens(t *testing.T) {
	tok := newTokenizer(t)

	assert.Equal(t, 0, tok.CountTokens(""))
	assert.Greater(t, tok.CountTokens("hello world"), 0)

	short := tok.CountTokens("hi")
	long := tok.CountTokens(strings.Repeat("hi there ", 100))
	assert.Greater(t, long, short)
}

func TestTruncateWithinBudgetIsUnchanged(t *testing.T) {
	tok := newTokenizer(t)

	text := "a short sentence"
	assert.Equal(t, text, tok.Truncate(text, 1000))
}

func TestTruncateEnforcesBudget(t *testing.T) {
	tok := newTokenizer(t)

	text := strings.Repeat("one two three four ", 200)
	truncated := tok.Truncate(text, 10)

	require.Less(t, len(truncated), len(text))
	assert.LessOrEqual(t, tok.CountTokens(truncated), 10)
}

func TestTruncateZeroBudget(t *testing.T) {
	tok := newTokenizer(t)

	assert.Equal(t, "", tok.Truncate("anything", 0))
}
