package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEmbedding is one embedded chunk of an indexed document.
type DocumentEmbedding struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	Page           int
	ChunkIndex     int
	Content        string
	EmbeddingValue []float32
	CreatedAt      time.Time
}
