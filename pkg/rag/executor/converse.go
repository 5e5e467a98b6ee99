package executor

import (
	"context"
	"fmt"

	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/rag/answer"
	"doc-chat-be/pkg/rag/citation"
	"doc-chat-be/pkg/rag/retrieve"
	"doc-chat-be/pkg/rag/summarize"
	"doc-chat-be/pkg/store"
)

// ConverseConfig bounds the summarizing conversational path.
type ConverseConfig struct {
	SummarizerWindow int
	HistoryCap       int
	TopK             int
	WordBudget       int
}

// ConverseInput is one turn of the summarizing conversational path,
// which condenses history instead of classifying intent.
type ConverseInput struct {
	Conversation *store.Conversation
	Message      string
	Retriever    retrieve.Retriever
}

// ConverseExecutor is the alternative conversational flow: summarize
// the history into a standalone question, retrieve on that, answer
// against the condensed history.
type ConverseExecutor struct {
	summarizer *summarize.Summarizer
	generator  *answer.Generator
	cfg        ConverseConfig
	log        logger.ILogger
}

func NewConverseExecutor(llmProvider llm.LLMProvider, cfg ConverseConfig, log logger.ILogger) *ConverseExecutor {
	if cfg.SummarizerWindow <= 0 {
		cfg.SummarizerWindow = 10
	}
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = 20
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if cfg.WordBudget <= 0 {
		cfg.WordBudget = 250
	}
	return &ConverseExecutor{
		summarizer: summarize.NewSummarizer(llmProvider, cfg.SummarizerWindow),
		generator:  answer.NewGenerator(llmProvider),
		cfg:        cfg,
		log:        log,
	}
}

func (e *ConverseExecutor) Execute(ctx context.Context, in ConverseInput) (*TurnResult, error) {
	conv := in.Conversation

	sum, err := e.summarizer.Summarize(ctx, conv.Messages, in.Message)
	if err != nil {
		return nil, fmt.Errorf("summarize history: %w", err)
	}

	var batch *retrieve.Batch
	var contextText string
	batch, err = in.Retriever.Retrieve(ctx, sum.StandaloneQuestion, e.cfg.TopK)
	if err != nil {
		e.log.Error("converse", "retrieval failed, answering with degraded context", map[string]interface{}{
			"session_id": conv.ID,
			"error":      err.Error(),
		})
		batch = nil
		contextText = fmt.Sprintf("Error retrieving documents: %s", err.Error())
	} else {
		contextText = batch.Context()
	}

	res, err := e.generator.SummaryGrounded(ctx, sum.Summary, contextText, in.Message, e.cfg.WordBudget)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	mapped := citation.Map(res.Citations, batch)

	conv.Append(store.Message{Role: store.RoleUser, Content: in.Message})
	conv.Append(store.Message{Role: store.RoleAssistant, Content: res.Answer, Citations: mapped})
	conv.Trim(e.cfg.HistoryCap)

	return &TurnResult{
		Answer:        res.Answer,
		Citations:     mapped,
		RetrievalUsed: true,
	}, nil
}
