package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusIndexing DocumentStatus = "indexing"
	DocumentStatusReady    DocumentStatus = "ready"
	DocumentStatusFailed   DocumentStatus = "failed"
)

// Document is an uploaded PDF. Description is the LLM generated summary
// shown to the classifier as "documents available"; it stays empty until
// indexing finishes.
type Document struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	FileName    string
	StoragePath string
	SizeBytes   int64
	PageCount   int
	Description string
	Status      DocumentStatus
	Selected    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
