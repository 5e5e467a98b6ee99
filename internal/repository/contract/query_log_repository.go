package contract

import (
	"context"

	"github.com/google/uuid"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/specification"
)

// IntentCount is one row of the dashboard's per-intent breakdown.
type IntentCount struct {
	Intent string
	Count  int64
}

type QueryLogRepository interface {
	Create(ctx context.Context, log *entity.QueryLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueryLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountByIntent(ctx context.Context, userId uuid.UUID) ([]IntentCount, error)
	AverageLatencyMs(ctx context.Context, userId uuid.UUID) (float64, error)
}
