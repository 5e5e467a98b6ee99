// Package executor drives the question answering control flows: the
// conversational turn loop and the stateless query agent.
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
	"doc-chat-be/pkg/rag/history"
	"doc-chat-be/pkg/rag/retrieve"
	"doc-chat-be/pkg/store"
)

// TurnConfig bounds the history each stage sees and retains.
type TurnConfig struct {
	ClassifyWindow int
	AnswerWindow   int
	HistoryCap     int
	TopK           int
}

// TurnInput is everything one conversational turn needs. Retriever is
// per call because its scope follows the caller's document selection.
type TurnInput struct {
	Conversation         *store.Conversation
	Message              string
	DocumentDescriptions string
	Retriever            retrieve.Retriever
}

// TurnResult is the outcome of a turn. Citations is empty for direct
// replies.
type TurnResult struct {
	Answer        string
	Intent        string
	Citations     []store.Citation
	RetrievalUsed bool
}

// TurnExecutor runs the classify -> (direct reply | retrieve and
// answer) -> history update loop for one conversational turn. It
// mutates the conversation it is given; callers serialize turns per
// session.
type TurnExecutor struct {
	classifier *classify.Classifier
	generator  *answer.Generator
	cfg        TurnConfig
	log        logger.ILogger
}

func NewTurnExecutor(llmProvider llm.LLMProvider, cfg TurnConfig, log logger.ILogger) *TurnExecutor {
	if cfg.ClassifyWindow <= 0 {
		cfg.ClassifyWindow = 20
	}
	if cfg.AnswerWindow <= 0 {
		cfg.AnswerWindow = 15
	}
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = 40
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	return &TurnExecutor{
		classifier: classify.NewClassifier(llmProvider),
		generator:  answer.NewGenerator(llmProvider),
		cfg:        cfg,
		log:        log,
	}
}

// Execute runs one turn. Classification and generation failures abort
// the turn before any history mutation; retrieval failures degrade into
// an error context and the turn proceeds.
func (e *TurnExecutor) Execute(ctx context.Context, in TurnInput) (*TurnResult, error) {
	conv := in.Conversation

	classifyHistory := history.Format(conv.Messages, e.cfg.ClassifyWindow)
	decision, err := e.classifier.ClassifyChat(ctx, in.Message, in.DocumentDescriptions, classifyHistory)
	if err != nil {
		return nil, fmt.Errorf("classify turn: %w", err)
	}

	e.log.Info("chat", "message classified", map[string]interface{}{
		"session_id": conv.ID,
		"intent":     decision.QueryType,
	})

	if !decision.NeedsRetrieval() {
		conv.Append(store.Message{Role: store.RoleUser, Content: in.Message})
		conv.Append(store.Message{Role: store.RoleAssistant, Content: decision.Response})
		conv.Trim(e.cfg.HistoryCap)

		return &TurnResult{
			Answer:    decision.Response,
			Intent:    decision.QueryType,
			Citations: []store.Citation{},
		}, nil
	}

	query := decision.FollowUpQuestion
	if strings.TrimSpace(query) == "" {
		e.log.Warn("chat", "no follow-up question generated, using original message", map[string]interface{}{
			"session_id": conv.ID,
		})
		query = in.Message
	}

	var batch *retrieve.Batch
	var contextText string
	batch, err = in.Retriever.Retrieve(ctx, query, e.cfg.TopK)
	if err != nil {
		e.log.Error("chat", "retrieval failed, answering with degraded context", map[string]interface{}{
			"session_id": conv.ID,
			"error":      err.Error(),
		})
		batch = nil
		contextText = fmt.Sprintf("Error retrieving documents: %s", err.Error())
	} else {
		contextText = batch.Context()
	}

	answerHistory := history.Format(conv.Messages, e.cfg.AnswerWindow)
	res, err := e.generator.Chat(ctx, contextText, in.Message, answerHistory)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	mapped := citation.Map(res.Citations, batch)

	conv.Append(store.Message{Role: store.RoleUser, Content: in.Message})
	conv.Append(store.Message{Role: store.RoleAssistant, Content: res.Answer, Citations: mapped})
	conv.Trim(e.cfg.HistoryCap)

	return &TurnResult{
		Answer:        res.Answer,
		Intent:        decision.QueryType,
		Citations:     mapped,
		RetrievalUsed: true,
	}, nil
}
