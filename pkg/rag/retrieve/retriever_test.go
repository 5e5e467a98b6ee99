package retrieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchContext(t *testing.T) {
	t.Run("nil batch", func(t *testing.T) {
		var b *Batch
		assert.Equal(t, "No relevant documents found.", b.Context())
	})

	t.Run("empty batch", func(t *testing.T) {
		b := &Batch{}
		assert.Equal(t, "No relevant documents found.", b.Context())
	})

	t.Run("source ids are zero based positions", func(t *testing.T) {
		b := &Batch{Passages: []Passage{
			{FileName: "report.pdf", Page: 1, Content: "Revenue grew."},
			{FileName: "notes.pdf", Page: 4, Content: "Costs fell."},
		}}

		got := b.Context()
		assert.Contains(t, got, "Source ID: 0\nContext source: report.pdf\nContext page content: Revenue grew.")
		assert.Contains(t, got, "Source ID: 1\nContext source: notes.pdf\nContext page content: Costs fell.")
	})

	t.Run("missing file name renders as N/A", func(t *testing.T) {
		b := &Batch{Passages: []Passage{{Content: "Orphan chunk."}}}
		assert.Contains(t, b.Context(), "Context source: N/A")
	})
}
