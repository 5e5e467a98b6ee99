package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitTextProducesOverlappingChunks(t *testing.T) {
	text := strings.Repeat("word ", 100) // 500 chars
	chunks := SplitText(text, 200, 50)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 200)
	}

	// consecutive chunks share text because the step is smaller than
	// the chunk size
	joined := strings.Join(chunks, "")
	assert.Greater(t, len(joined), len(text))
}

func TestSplitTextBreaksOnWordBoundary(t *testing.T) {
	text := strings.Repeat("alpha beta gamma ", 50)
	chunks := SplitText(text, 100, 20)

	for i, c := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(c, " "),
			"chunk %d should end on whitespace: %q", i, c[len(c)-10:])
	}
}

func TestSplitTextHandlesNoSpaces(t *testing.T) {
	text := strings.Repeat("x", 500)
	chunks := SplitText(text, 200, 50)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.NotEmpty(t, c)
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("y", 300)
	chunks := SplitText(text, 100, 150)

	// falls back to non-overlapping steps instead of looping forever
	assert.Equal(t, 3, len(chunks))
}
