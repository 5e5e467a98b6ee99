package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/repository/specification"
	"doc-chat-be/internal/repository/unitofwork"
	"doc-chat-be/pkg/embedding"
	"doc-chat-be/pkg/rag/retrieve"
)

// vectorSearchFunc adapts a closure to retrieve.VectorSearch so each
// request gets a search scoped to its own user and document selection.
type vectorSearchFunc func(ctx context.Context, vector []float32, k int) ([]retrieve.Passage, error)

func (f vectorSearchFunc) Search(ctx context.Context, vector []float32, k int) ([]retrieve.Passage, error) {
	return f(ctx, vector, k)
}

// scopedRetriever builds a per-request vector retriever limited to the
// user's documents, and to documentIds when non-empty.
func scopedRetriever(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.EmbeddingProvider,
	userId uuid.UUID,
	documentIds []uuid.UUID,
) retrieve.Retriever {
	search := vectorSearchFunc(func(ctx context.Context, vector []float32, k int) ([]retrieve.Passage, error) {
		uow := uowFactory.NewUnitOfWork(ctx)
		scored, err := uow.DocumentEmbeddingRepository().SearchSimilar(ctx, vector, k, userId, documentIds)
		if err != nil {
			return nil, err
		}
		passages := make([]retrieve.Passage, len(scored))
		for i, s := range scored {
			passages[i] = retrieve.Passage{
				FileName: s.FileName,
				Page:     s.Embedding.Page,
				Content:  s.Embedding.Content,
				Score:    float32(s.Similarity),
			}
		}
		return passages, nil
	})
	return retrieve.NewVectorRetriever(embedder, search)
}

// retrievalScope resolves the active selection and the document
// descriptions line shown to the classifier. With no selection it falls
// back to every indexed document the user owns.
func retrievalScope(ctx context.Context, uowFactory unitofwork.RepositoryFactory, userId uuid.UUID) ([]uuid.UUID, string, error) {
	uow := uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.OwnedBy{UserId: userId},
		specification.SelectedOnly{},
	)
	if err != nil {
		return nil, "", err
	}
	if len(docs) == 0 {
		docs, err = uow.DocumentRepository().FindAll(ctx,
			specification.OwnedBy{UserId: userId},
			specification.ByStatus{Status: string(entity.DocumentStatusReady)},
		)
		if err != nil {
			return nil, "", err
		}
	}

	ids := make([]uuid.UUID, 0, len(docs))
	descriptions := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.Id)
		desc := d.Description
		if desc == "" {
			desc = d.FileName
		}
		descriptions = append(descriptions, desc)
	}

	line := strings.Join(descriptions, " | ")
	if line == "" {
		line = "No documents available."
	}
	return ids, line, nil
}
