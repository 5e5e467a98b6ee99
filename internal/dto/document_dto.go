package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	Id          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   int       `json:"page_count"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Selected    bool      `json:"selected"`
	CreatedAt   time.Time `json:"created_at"`
}

type SelectDocumentsRequest struct {
	DocumentIds []uuid.UUID `json:"document_ids" validate:"required,min=1"`
}

// PublishIndexDocumentMessage is the event payload handed to the indexer.
type PublishIndexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
