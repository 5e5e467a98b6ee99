package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"doc-chat-be/internal/constant"
	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/internal/repository/unitofwork"
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.DocumentResponse, error)
	// Register stores an already saved file, used by the upload watcher.
	Register(ctx context.Context, userId uuid.UUID, path string) (*dto.DocumentResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error)
	Select(ctx context.Context, userId uuid.UUID, ids []uuid.UUID) error
	Selected(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type documentService struct {
	uowFactory  unitofwork.RepositoryFactory
	publisher   IPublisherService
	uploadDir   string
	maxSelected int
	logger      logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	uploadDir string,
	maxSelected int,
	logger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:  uowFactory,
		publisher:   publisher,
		uploadDir:   uploadDir,
		maxSelected: maxSelected,
		logger:      logger,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.DocumentResponse, error) {
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		return nil, fmt.Errorf("only PDF files are supported")
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}

	dst := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename)))
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("store upload: %w", err)
	}

	return s.create(ctx, userId, file.Filename, dst, file.Size)
}

func (s *documentService) Register(ctx context.Context, userId uuid.UUID, path string) (*dto.DocumentResponse, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	return s.create(ctx, userId, filepath.Base(path), path, info.Size())
}

func (s *documentService) create(ctx context.Context, userId uuid.UUID, fileName, path string, size int64) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := &entity.Document{
		UserId:      userId,
		FileName:    fileName,
		StoragePath: path,
		SizeBytes:   size,
		Status:      entity.DocumentStatusPending,
	}
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	payload, err := json.Marshal(dto.PublishIndexDocumentMessage{DocumentId: doc.Id})
	if err != nil {
		return nil, fmt.Errorf("marshal index message: %w", err)
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		// The document row exists; indexing can be retried by re-upload
		s.logger.Error(constant.ModuleDocument, "failed to publish index event", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
		return nil, fmt.Errorf("queue indexing: %w", err)
	}

	s.logger.Info(constant.ModuleDocument, "document uploaded", map[string]interface{}{
		"document_id": doc.Id.String(),
		"file_name":   doc.FileName,
	})

	return toDocumentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	res := make([]*dto.DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = toDocumentResponse(d)
	}
	return res, nil
}

func (s *documentService) Select(ctx context.Context, userId uuid.UUID, ids []uuid.UUID) error {
	if len(ids) > s.maxSelected {
		return fmt.Errorf("at most %d documents can be selected", s.maxSelected)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin selection: %w", err)
	}

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.ByIDs{IDs: ids},
	)
	if err != nil {
		uow.Rollback()
		return fmt.Errorf("verify selection: %w", err)
	}
	if len(docs) != len(ids) {
		uow.Rollback()
		return fmt.Errorf("selection contains unknown documents")
	}
	for _, d := range docs {
		if d.Status != entity.DocumentStatusReady {
			uow.Rollback()
			return fmt.Errorf("document %s is not indexed yet", d.FileName)
		}
	}

	if err := uow.DocumentRepository().SetSelected(ctx, userId, ids); err != nil {
		uow.Rollback()
		return fmt.Errorf("update selection: %w", err)
	}

	return uow.Commit()
}

func (s *documentService) Selected(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.SelectedOnly{},
	)
	if err != nil {
		return nil, fmt.Errorf("list selected: %w", err)
	}

	res := make([]*dto.DocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = toDocumentResponse(d)
	}
	return res, nil
}

// Delete removes the document, its embeddings, and the stored file.
// Deleting an already removed document succeeds.
func (s *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserId: userId},
	)
	if err != nil {
		return fmt.Errorf("lookup document: %w", err)
	}
	if doc == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	if err := uow.DocumentEmbeddingRepository().DeleteByDocumentId(ctx, id); err != nil {
		uow.Rollback()
		return fmt.Errorf("delete embeddings: %w", err)
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return fmt.Errorf("delete document: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := os.Remove(doc.StoragePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(constant.ModuleDocument, "failed to remove stored file", map[string]interface{}{
			"path":  doc.StoragePath,
			"error": err.Error(),
		})
	}
	return nil
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:          d.Id,
		FileName:    d.FileName,
		SizeBytes:   d.SizeBytes,
		PageCount:   d.PageCount,
		Description: d.Description,
		Status:      string(d.Status),
		Selected:    d.Selected,
		CreatedAt:   d.CreatedAt,
	}
}
