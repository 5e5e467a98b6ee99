package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-chat-be/pkg/rag/retrieve"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []int
	}{
		{
			name:   "no markers",
			answer: "The revenue grew by 12 percent.",
			want:   []int{},
		},
		{
			name:   "single marker",
			answer: "The revenue grew by 12 percent [0].",
			want:   []int{0},
		},
		{
			name:   "multiple markers",
			answer: "Revenue grew [0] while costs fell [2].",
			want:   []int{0, 2},
		},
		{
			name:   "duplicates collapse",
			answer: "Revenue [1] and profit [1] both grew [0].",
			want:   []int{0, 1},
		},
		{
			name:   "unsorted markers come back ascending",
			answer: "See [3], then [1], then [2].",
			want:   []int{1, 2, 3},
		},
		{
			name:   "non-numeric brackets ignored",
			answer: "As shown in [figure] and [0].",
			want:   []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.answer))
		})
	}
}

func TestMap(t *testing.T) {
	batch := &retrieve.Batch{
		Passages: []retrieve.Passage{
			{FileName: "report.pdf", Page: 3, Content: "Revenue grew by 12 percent."},
			{FileName: "report.pdf", Page: 7, Content: "Costs fell by 4 percent."},
		},
	}

	t.Run("valid ids resolve to passages", func(t *testing.T) {
		citations := Map([]int{0, 1}, batch)

		assert.Len(t, citations, 2)
		assert.Equal(t, "report.pdf", citations[0].FileName)
		assert.Equal(t, 3, citations[0].Page)
		assert.Equal(t, "Revenue grew by 12 percent.", citations[0].Snippet)
		assert.Empty(t, citations[0].Error)
		assert.Equal(t, 7, citations[1].Page)
	})

	t.Run("out of range id yields error record", func(t *testing.T) {
		citations := Map([]int{5}, batch)

		assert.Len(t, citations, 1)
		assert.Equal(t, 5, citations[0].SourceID)
		assert.Equal(t, "Invalid citation ID", citations[0].Error)
		assert.Empty(t, citations[0].FileName)
	})

	t.Run("nil batch yields error records for all ids", func(t *testing.T) {
		citations := Map([]int{0, 1}, nil)

		assert.Len(t, citations, 2)
		for _, c := range citations {
			assert.Equal(t, "Invalid citation ID", c.Error)
		}
	})

	t.Run("no ids yields empty slice", func(t *testing.T) {
		citations := Map([]int{}, batch)
		assert.Empty(t, citations)
	})
}
