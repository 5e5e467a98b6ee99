package contract

import (
	"context"

	"github.com/google/uuid"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/specification"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SetSelected replaces the user's active selection with exactly the
	// given document IDs.
	SetSelected(ctx context.Context, userId uuid.UUID, ids []uuid.UUID) error
}
