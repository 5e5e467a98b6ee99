package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"doc-chat-be/internal/constant"
	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/memory"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/pkg/embedding"
	"doc-chat-be/pkg/rag/executor"
	"doc-chat-be/pkg/rag/retrieve"
	"doc-chat-be/pkg/store"
)

type IQueryService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
	Converse(ctx context.Context, userId uuid.UUID, req *dto.ConverseRequest) (*dto.ConverseResponse, error)
}

type queryService struct {
	conversations    *memory.ConversationRepository
	uowFactory       unitofwork.RepositoryFactory
	embedder         embedding.EmbeddingProvider
	queryExecutor    *executor.QueryExecutor
	converseExecutor *executor.ConverseExecutor
	webRetriever     retrieve.Retriever
	wordBudget       int
	logger           logger.ILogger
}

func NewQueryService(
	conversations *memory.ConversationRepository,
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.EmbeddingProvider,
	queryExecutor *executor.QueryExecutor,
	converseExecutor *executor.ConverseExecutor,
	webRetriever retrieve.Retriever,
	wordBudget int,
	logger logger.ILogger,
) IQueryService {
	return &queryService{
		conversations:    conversations,
		uowFactory:       uowFactory,
		embedder:         embedder,
		queryExecutor:    queryExecutor,
		converseExecutor: converseExecutor,
		webRetriever:     webRetriever,
		wordBudget:       wordBudget,
		logger:           logger,
	}
}

func (s *queryService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	docIds, descriptions, err := retrievalScope(ctx, s.uowFactory, userId)
	if err != nil {
		return nil, fmt.Errorf("resolve retrieval scope: %w", err)
	}

	wordBudget := req.WordLength
	if wordBudget <= 0 {
		wordBudget = s.wordBudget
	}

	started := time.Now()
	result, err := s.queryExecutor.Execute(ctx, executor.QueryInput{
		Question:             req.Question,
		DocumentDescriptions: descriptions,
		WordBudget:           wordBudget,
		ApproveWebSearch:     req.ApproveWebSearch,
		VectorRetriever:      scopedRetriever(s.uowFactory, s.embedder, userId, docIds),
		WebRetriever:         s.webRetriever,
	})
	if err != nil {
		return nil, err
	}

	s.recordQuery(ctx, userId, "", entity.QueryModeQuery, req.Question, result.Answer, result.Citations, result.UsedWebSearch, time.Since(started))

	return &dto.AskResponse{
		Answer:        result.Answer,
		Citations:     toCitationDTOs(result.Citations),
		UsedWebSearch: result.UsedWebSearch,
	}, nil
}

// Converse is the summarizing conversational path: history is condensed
// into a standalone question before retrieval instead of classified.
func (s *queryService) Converse(ctx context.Context, userId uuid.UUID, req *dto.ConverseRequest) (*dto.ConverseResponse, error) {
	unlock := s.conversations.Lock(req.SessionId)
	defer unlock()

	conv, ok := s.conversations.Get(req.SessionId)
	if !ok {
		// this path creates sessions lazily, keyed by the caller's ID
		conv = &store.Conversation{
			ID:        req.SessionId,
			UserID:    userId.String(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
	if conv.UserID != userId.String() {
		return nil, ErrSessionNotFound
	}

	docIds, _, err := retrievalScope(ctx, s.uowFactory, userId)
	if err != nil {
		return nil, fmt.Errorf("resolve retrieval scope: %w", err)
	}

	started := time.Now()
	result, err := s.converseExecutor.Execute(ctx, executor.ConverseInput{
		Conversation: conv,
		Message:      req.Message,
		Retriever:    scopedRetriever(s.uowFactory, s.embedder, userId, docIds),
	})
	if err != nil {
		return nil, err
	}

	s.conversations.Save(conv)
	s.recordQuery(ctx, userId, conv.ID, entity.QueryModeConverse, req.Message, result.Answer, result.Citations, false, time.Since(started))

	return &dto.ConverseResponse{
		SessionId: conv.ID,
		Answer:    result.Answer,
		Citations: toCitationDTOs(result.Citations),
	}, nil
}

func (s *queryService) recordQuery(ctx context.Context, userId uuid.UUID, sessionId string, mode entity.QueryMode, question, answer string, citations []store.Citation, usedWeb bool, took time.Duration) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	log := &entity.QueryLog{
		UserId:        userId,
		SessionId:     sessionId,
		Mode:          mode,
		Question:      question,
		Answer:        answer,
		Citations:     citations,
		UsedWebSearch: usedWeb,
		LatencyMs:     took.Milliseconds(),
	}
	if err := uow.QueryLogRepository().Create(ctx, log); err != nil {
		s.logger.Warn(constant.ModuleQuery, "failed to record query log", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
