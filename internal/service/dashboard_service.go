package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/memory"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/internal/repository/unitofwork"
)

type IDashboardService interface {
	Stats(ctx context.Context, userId uuid.UUID) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	uowFactory    unitofwork.RepositoryFactory
	conversations *memory.ConversationRepository
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory, conversations *memory.ConversationRepository) IDashboardService {
	return &dashboardService{
		uowFactory:    uowFactory,
		conversations: conversations,
	}
}

func (s *dashboardService) Stats(ctx context.Context, userId uuid.UUID) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	owned := specification.OwnedBy{UserId: userId}

	totalDocs, err := uow.DocumentRepository().Count(ctx, owned, specification.NotDeleted{})
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	readyDocs, err := uow.DocumentRepository().Count(ctx, owned, specification.NotDeleted{},
		specification.ByStatus{Status: string(entity.DocumentStatusReady)})
	if err != nil {
		return nil, fmt.Errorf("count ready documents: %w", err)
	}

	totalChunks, err := s.countChunks(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	totalQueries, err := uow.QueryLogRepository().Count(ctx, owned)
	if err != nil {
		return nil, fmt.Errorf("count queries: %w", err)
	}

	weekBoundary := time.Now().AddDate(0, 0, -7)
	recentQueries, err := uow.QueryLogRepository().Count(ctx, owned,
		specification.CreatedAfter{Boundary: weekBoundary})
	if err != nil {
		return nil, fmt.Errorf("count recent queries: %w", err)
	}

	avgLatency, err := uow.QueryLogRepository().AverageLatencyMs(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("average latency: %w", err)
	}

	intents, err := uow.QueryLogRepository().CountByIntent(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("count by intent: %w", err)
	}
	breakdown := make([]dto.IntentCountDTO, len(intents))
	for i, row := range intents {
		breakdown[i] = dto.IntentCountDTO{Intent: row.Intent, Count: row.Count}
	}

	return &dto.DashboardStatsResponse{
		TotalDocuments:   totalDocs,
		ReadyDocuments:   readyDocs,
		TotalChunks:      totalChunks,
		TotalQueries:     totalQueries,
		QueriesLast7Days: recentQueries,
		AverageLatencyMs: avgLatency,
		IntentBreakdown:  breakdown,
		ActiveChats:      s.conversations.Count(),
	}, nil
}

// countChunks counts embeddings through the user's documents because
// embedding rows carry no user_id of their own.
func (s *dashboardService) countChunks(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (int64, error) {
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId}, specification.NotDeleted{})
	if err != nil {
		return 0, fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(docs))
	for i, doc := range docs {
		ids[i] = doc.Id
	}

	count, err := uow.DocumentEmbeddingRepository().Count(ctx,
		specification.ByDocumentIDs{DocumentIds: ids})
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return count, nil
}
