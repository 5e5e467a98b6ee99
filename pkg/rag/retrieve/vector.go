package retrieve

import (
	"context"
	"fmt"

	"doc-chat-be/pkg/embedding"
)

// VectorSearch runs a similarity search over stored chunk embeddings.
// Implementations carry their own scoping (user, selected documents).
type VectorSearch interface {
	Search(ctx context.Context, vector []float32, k int) ([]Passage, error)
}

// VectorRetriever embeds the query and searches the vector store.
type VectorRetriever struct {
	embedder embedding.EmbeddingProvider
	search   VectorSearch
}

var _ Retriever = &VectorRetriever{}

func NewVectorRetriever(embedder embedding.EmbeddingProvider, search VectorSearch) *VectorRetriever {
	return &VectorRetriever{
		embedder: embedder,
		search:   search,
	}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query string, k int) (*Batch, error) {
	res, err := r.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	passages, err := r.search.Search(ctx, res.Embedding.Values, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	return &Batch{Passages: passages}, nil
}
