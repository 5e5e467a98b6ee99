package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"doc-chat-be/internal/constant"
	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/pkg/embedding"
	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/pdf"
	"doc-chat-be/pkg/rag/prompt"
	"doc-chat-be/pkg/utils"
)

// IIndexerService consumes INDEX_DOCUMENT events: extract text, chunk,
// embed, summarize, mark the document ready.
type IIndexerService interface {
	Consume(ctx context.Context) error
}

type indexerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	extractor         pdf.Extractor
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	logger            logger.ILogger
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	extractor pdf.Extractor,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	logger logger.ILogger,
) IIndexerService {
	return &indexerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		extractor:         extractor,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		logger:            logger,
	}
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error(constant.ModuleIndexer, "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads never become valid, do not retry
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		s.logger.Error(constant.ModuleIndexer, "failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if doc == nil {
		// deleted before indexing started
		msg.Ack()
		return
	}

	doc.Status = entity.DocumentStatusIndexing
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		s.logger.Error(constant.ModuleIndexer, "failed to mark document indexing", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	if err := s.index(ctx, uow, doc); err != nil {
		s.logger.Error(constant.ModuleIndexer, "indexing failed", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		doc.Status = entity.DocumentStatusFailed
		_ = uow.DocumentRepository().Update(ctx, doc)
		msg.Ack() // failure is recorded on the row, retrying the same file rarely helps
		return
	}

	s.logger.Info(constant.ModuleIndexer, "document indexed", map[string]interface{}{
		"document_id": doc.Id.String(),
		"pages":       doc.PageCount,
	})
	msg.Ack()
}

func (s *indexerService) index(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document) error {
	pages, err := s.extractor.Extract(ctx, doc.StoragePath)
	if err != nil {
		return err
	}

	// stale chunks from a previous run must not survive a re-index
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return err
	}

	var chunks []*entity.DocumentEmbedding
	for _, page := range pages {
		pieces := utils.SplitText(page.Text, constant.ChunkSize, constant.ChunkOverlap)
		for i, piece := range pieces {
			res, err := s.embeddingProvider.Generate(piece, embedding.TaskRetrievalDocument)
			if err != nil {
				return err
			}
			chunks = append(chunks, &entity.DocumentEmbedding{
				DocumentId:     doc.Id,
				Page:           page.Number,
				ChunkIndex:     i,
				Content:        piece,
				EmbeddingValue: res.Embedding.Values,
			})
		}
	}

	if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, chunks); err != nil {
		return err
	}

	description, err := s.summarize(ctx, pages)
	if err != nil {
		// a missing description degrades classification but not retrieval
		s.logger.Warn(constant.ModuleIndexer, "summary generation failed", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	now := time.Now()
	doc.PageCount = len(pages)
	doc.Description = description
	doc.Status = entity.DocumentStatusReady
	doc.UpdatedAt = &now
	return uow.DocumentRepository().Update(ctx, doc)
}

func (s *indexerService) summarize(ctx context.Context, pages []pdf.Page) (string, error) {
	limit := constant.SummaryPageLimit
	if len(pages) < limit {
		limit = len(pages)
	}

	var b strings.Builder
	for _, page := range pages[:limit] {
		b.WriteString(page.Text)
		b.WriteString("\n")
	}

	return s.llmProvider.Generate(ctx, prompt.DocumentSummary(b.String()), llm.WithTemperature(0.3))
}
