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
	"doc-chat-be/pkg/store"
)

var ErrSessionNotFound = fmt.Errorf("chat session not found")

const chatGreeting = "Hello! Ask me anything about your uploaded documents."

type IChatService interface {
	Start(ctx context.Context, userId uuid.UUID) (*dto.StartChatResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	History(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ChatHistoryResponse, error)
	// End is idempotent: ending an unknown session succeeds.
	End(ctx context.Context, userId uuid.UUID, sessionId string) error
	ActiveSessions() int
}

type chatService struct {
	conversations *memory.ConversationRepository
	uowFactory    unitofwork.RepositoryFactory
	embedder      embedding.EmbeddingProvider
	turnExecutor  *executor.TurnExecutor
	logger        logger.ILogger
}

func NewChatService(
	conversations *memory.ConversationRepository,
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.EmbeddingProvider,
	turnExecutor *executor.TurnExecutor,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		conversations: conversations,
		uowFactory:    uowFactory,
		embedder:      embedder,
		turnExecutor:  turnExecutor,
		logger:        logger,
	}
}

func (s *chatService) Start(ctx context.Context, userId uuid.UUID) (*dto.StartChatResponse, error) {
	conv := &store.Conversation{
		ID:        uuid.NewString(),
		UserID:    userId.String(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.conversations.Save(conv)

	s.logger.Info(constant.ModuleChat, "chat session started", map[string]interface{}{
		"session_id": conv.ID,
		"user_id":    conv.UserID,
	})

	return &dto.StartChatResponse{
		SessionId: conv.ID,
		Greeting:  chatGreeting,
		Messages:  []dto.ChatHistoryMessage{},
	}, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.NewString()
	}

	// Serialize turns per session so concurrent sends cannot interleave
	// their history read-modify-write.
	unlock := s.conversations.Lock(sessionId)
	defer unlock()

	// An absent or unknown session id starts a fresh session rather
	// than failing the turn. A session owned by someone else gets a
	// fresh id so the owner's history is never touched.
	conv, ok := s.conversations.Get(sessionId)
	if ok && conv.UserID != userId.String() {
		sessionId = uuid.NewString()
		ok = false
	}
	if !ok {
		conv = &store.Conversation{
			ID:        sessionId,
			UserID:    userId.String(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}

	docIds, descriptions, err := retrievalScope(ctx, s.uowFactory, userId)
	if err != nil {
		return nil, fmt.Errorf("resolve retrieval scope: %w", err)
	}

	started := time.Now()
	result, err := s.turnExecutor.Execute(ctx, executor.TurnInput{
		Conversation:         conv,
		Message:              req.Message,
		DocumentDescriptions: descriptions,
		Retriever:            scopedRetriever(s.uowFactory, s.embedder, userId, docIds),
	})
	if err != nil {
		return nil, err
	}

	s.conversations.Save(conv)
	s.recordQuery(ctx, userId, conv.ID, result, req.Message, time.Since(started))

	return &dto.SendMessageResponse{
		SessionId:     conv.ID,
		Answer:        result.Answer,
		Intent:        result.Intent,
		Citations:     toCitationDTOs(result.Citations),
		RetrievalUsed: result.RetrievalUsed,
		History:       toHistoryDTOs(conv.Messages),
	}, nil
}

func (s *chatService) History(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.ChatHistoryResponse, error) {
	conv, ok := s.conversations.Get(sessionId)
	if !ok || conv.UserID != userId.String() {
		return nil, ErrSessionNotFound
	}

	return &dto.ChatHistoryResponse{
		SessionId: sessionId,
		Messages:  toHistoryDTOs(conv.Messages),
	}, nil
}

func (s *chatService) End(ctx context.Context, userId uuid.UUID, sessionId string) error {
	conv, ok := s.conversations.Get(sessionId)
	if !ok {
		return nil
	}
	if conv.UserID != userId.String() {
		return nil
	}
	s.conversations.Delete(sessionId)

	s.logger.Info(constant.ModuleChat, "chat session ended", map[string]interface{}{
		"session_id": sessionId,
	})
	return nil
}

func (s *chatService) ActiveSessions() int {
	return s.conversations.Count()
}

func (s *chatService) recordQuery(ctx context.Context, userId uuid.UUID, sessionId string, result *executor.TurnResult, question string, took time.Duration) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	log := &entity.QueryLog{
		UserId:    userId,
		SessionId: sessionId,
		Mode:      entity.QueryModeChat,
		Intent:    result.Intent,
		Question:  question,
		Answer:    result.Answer,
		Citations: result.Citations,
		LatencyMs: took.Milliseconds(),
	}
	if err := uow.QueryLogRepository().Create(ctx, log); err != nil {
		// stats loss must not fail the turn
		s.logger.Warn(constant.ModuleChat, "failed to record query log", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func toHistoryDTOs(messages []store.Message) []dto.ChatHistoryMessage {
	res := make([]dto.ChatHistoryMessage, len(messages))
	for i, m := range messages {
		res[i] = dto.ChatHistoryMessage{
			Role:      m.Role,
			Content:   m.Content,
			Citations: toCitationDTOs(m.Citations),
			CreatedAt: m.CreatedAt,
		}
	}
	return res
}

func toCitationDTOs(citations []store.Citation) []dto.CitationDTO {
	res := make([]dto.CitationDTO, len(citations))
	for i, c := range citations {
		res[i] = dto.CitationDTO{
			SourceId: c.SourceID,
			FileName: c.FileName,
			Page:     c.Page,
			Snippet:  c.Snippet,
			Error:    c.Error,
		}
	}
	return res
}
