package retrieve

import (
	"context"
	"fmt"
	"strings"
)

// Passage is one retrieved chunk with the metadata a citation needs.
type Passage struct {
	FileName string
	Page     int
	Content  string
	Score    float32
}

// Batch is the result of a single retrieval call. Source IDs are the
// zero-based positions in Passages; answers cite against exactly one
// batch, so the batch must stay with the call that produced it rather
// than live in any shared slot.
type Batch struct {
	Passages []Passage
}

// Context renders the batch in the "Source ID: n" layout the answer
// prompts reference.
func (b *Batch) Context() string {
	if b == nil || len(b.Passages) == 0 {
		return "No relevant documents found."
	}

	parts := make([]string, len(b.Passages))
	for i, p := range b.Passages {
		source := p.FileName
		if source == "" {
			source = "N/A"
		}
		parts[i] = fmt.Sprintf("Source ID: %d\nContext source: %s\nContext page content: %s", i, source, p.Content)
	}
	return "\n\n" + strings.Join(parts, "\n\n")
}

// Retriever finds passages relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) (*Batch, error)
}
