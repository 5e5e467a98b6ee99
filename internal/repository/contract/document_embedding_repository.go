package contract

import (
	"context"

	"github.com/google/uuid"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/specification"
)

// ScoredDocumentEmbedding wraps DocumentEmbedding with its similarity
// score and the owning document's file name for citation metadata.
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	FileName   string
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.DocumentEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar runs a cosine similarity search scoped to the user's
	// documents; documentIds further narrows it to the active selection
	// when non-empty.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, documentIds []uuid.UUID) ([]*ScoredDocumentEmbedding, error)
}
