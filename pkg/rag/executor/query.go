package executor

import (
	"context"
	"fmt"
	"strings"

	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/rag/answer"
	"doc-chat-be/pkg/rag/citation"
	"doc-chat-be/pkg/rag/classify"
	"doc-chat-be/pkg/rag/retrieve"
	"doc-chat-be/pkg/store"
)

// insufficientAnswer is the phrase the answer prompt mandates when the
// vector context cannot support an answer. Seeing it in a vector store
// answer is the escalation trigger for web search.
const insufficientAnswer = "don't know based on the provided information"

// QueryInput is one stateless question.
type QueryInput struct {
	Question             string
	DocumentDescriptions string
	WordBudget           int
	ApproveWebSearch     bool
	VectorRetriever      retrieve.Retriever
	WebRetriever         retrieve.Retriever
}

// QueryResult is the agent's answer.
type QueryResult struct {
	Answer        string
	Citations     []store.Citation
	UsedWebSearch bool
}

// QueryExecutor runs the stateless three way agent: greetings answered
// directly, document questions against the vector store with optional
// escalation to web search, external knowledge questions straight to
// web search when it is approved.
type QueryExecutor struct {
	classifier *classify.Classifier
	generator  *answer.Generator
	topK       int
	log        logger.ILogger
}

func NewQueryExecutor(llmProvider llm.LLMProvider, topK int, log logger.ILogger) *QueryExecutor {
	if topK <= 0 {
		topK = 4
	}
	return &QueryExecutor{
		classifier: classify.NewClassifier(llmProvider),
		generator:  answer.NewGenerator(llmProvider),
		topK:       topK,
		log:        log,
	}
}

func (e *QueryExecutor) Execute(ctx context.Context, in QueryInput) (*QueryResult, error) {
	decision, err := e.classifier.ClassifyQuery(ctx, in.Question, in.DocumentDescriptions)
	if err != nil {
		return nil, fmt.Errorf("classify query: %w", err)
	}

	switch decision.QueryType {
	case classify.IntentGreeting:
		return &QueryResult{
			Answer:    decision.Response,
			Citations: []store.Citation{},
		}, nil

	case classify.IntentExternalKnowledge:
		if !in.ApproveWebSearch {
			return &QueryResult{
				Answer:    "I need external knowledge to answer this question, and web search is not enabled.",
				Citations: []store.Citation{},
			}, nil
		}
		return e.answerFromWeb(ctx, in)

	default: // document_search
		result, err := e.answerFrom(ctx, in.VectorRetriever, in)
		if err != nil {
			return nil, err
		}

		needsWebSearch := strings.Contains(strings.ToLower(result.Answer), insufficientAnswer)
		if needsWebSearch && in.ApproveWebSearch {
			e.log.Info("query", "vector store insufficient, escalating to web search", nil)
			return e.answerFromWeb(ctx, in)
		}
		return result, nil
	}
}

func (e *QueryExecutor) answerFromWeb(ctx context.Context, in QueryInput) (*QueryResult, error) {
	result, err := e.answerFrom(ctx, in.WebRetriever, in)
	if err != nil {
		return nil, err
	}
	result.UsedWebSearch = true
	return result, nil
}

func (e *QueryExecutor) answerFrom(ctx context.Context, retriever retrieve.Retriever, in QueryInput) (*QueryResult, error) {
	var contextText string
	batch, err := retriever.Retrieve(ctx, in.Question, e.topK)
	if err != nil {
		e.log.Error("query", "retrieval failed, answering with degraded context", map[string]interface{}{
			"error": err.Error(),
		})
		batch = nil
		contextText = fmt.Sprintf("Error retrieving documents: %s", err.Error())
	} else {
		contextText = batch.Context()
	}

	res, err := e.generator.Single(ctx, contextText, in.Question, in.WordBudget)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &QueryResult{
		Answer:    res.Answer,
		Citations: citation.Map(res.Citations, batch),
	}, nil
}
