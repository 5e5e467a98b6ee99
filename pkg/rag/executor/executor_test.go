package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/rag/retrieve"
	"doc-chat-be/pkg/store"
)

// scriptedLLM returns queued responses in order, one per Generate call.
type scriptedLLM struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedLLM) next() (string, error) {
	i := s.calls
	s.calls++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("scripted llm exhausted")
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.next()
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.next()
}

type stubRetriever struct {
	batch     *retrieve.Batch
	err       error
	lastQuery string
	lastK     int
	calls     int
}

func (r *stubRetriever) Retrieve(ctx context.Context, query string, k int) (*retrieve.Batch, error) {
	r.calls++
	r.lastQuery = query
	r.lastK = k
	return r.batch, r.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func testBatch() *retrieve.Batch {
	return &retrieve.Batch{Passages: []retrieve.Passage{
		{FileName: "report.pdf", Page: 2, Content: "Revenue grew by 12 percent."},
	}}
}

func TestTurnDirectReply(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "greeting", "response": "Hello! Ask me about your documents."}`,
	}}
	retriever := &stubRetriever{}
	exec := NewTurnExecutor(llmStub, TurnConfig{}, nopLogger{})
	conv := &store.Conversation{ID: "s1", UserID: "u1"}

	res, err := exec.Execute(context.Background(), TurnInput{
		Conversation: conv,
		Message:      "hi there",
		Retriever:    retriever,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Hello! Ask me about your documents.", res.Answer)
	assert.Equal(t, "greeting", res.Intent)
	assert.False(t, res.RetrievalUsed)
	assert.Empty(t, res.Citations)
	assert.Zero(t, retriever.calls)

	// user and assistant turns recorded
	assert.Len(t, conv.Messages, 2)
	assert.Equal(t, store.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, store.RoleAssistant, conv.Messages[1].Role)
}

func TestTurnRetrievalPath(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "document_search", "follow_up_question": "What was the 2023 revenue growth?"}`,
		"Revenue grew by 12 percent [0].",
	}}
	retriever := &stubRetriever{batch: testBatch()}
	exec := NewTurnExecutor(llmStub, TurnConfig{TopK: 5}, nopLogger{})
	conv := &store.Conversation{ID: "s1", UserID: "u1"}

	res, err := exec.Execute(context.Background(), TurnInput{
		Conversation: conv,
		Message:      "how did revenue do?",
		Retriever:    retriever,
	})

	assert.NoError(t, err)
	assert.True(t, res.RetrievalUsed)
	assert.Equal(t, "What was the 2023 revenue growth?", retriever.lastQuery)
	assert.Equal(t, 5, retriever.lastK)
	assert.Len(t, res.Citations, 1)
	assert.Equal(t, "report.pdf", res.Citations[0].FileName)
	assert.Equal(t, 2, res.Citations[0].Page)

	assert.Len(t, conv.Messages, 2)
	assert.Len(t, conv.Messages[1].Citations, 1)
}

func TestTurnRewriteFallback(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "document_search", "follow_up_question": ""}`,
		"Some answer.",
	}}
	retriever := &stubRetriever{batch: testBatch()}
	exec := NewTurnExecutor(llmStub, TurnConfig{}, nopLogger{})

	_, err := exec.Execute(context.Background(), TurnInput{
		Conversation: &store.Conversation{ID: "s1"},
		Message:      "how did revenue do?",
		Retriever:    retriever,
	})

	assert.NoError(t, err)
	assert.Equal(t, "how did revenue do?", retriever.lastQuery)
}

func TestTurnDegradedRetrieval(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "document_search", "follow_up_question": "revenue?"}`,
		"I could not retrieve the documents, so I cannot answer precisely.",
	}}
	retriever := &stubRetriever{err: errors.New("vector store down")}
	exec := NewTurnExecutor(llmStub, TurnConfig{}, nopLogger{})
	conv := &store.Conversation{ID: "s1"}

	res, err := exec.Execute(context.Background(), TurnInput{
		Conversation: conv,
		Message:      "how did revenue do?",
		Retriever:    retriever,
	})

	// retrieval failure degrades, the turn still completes
	assert.NoError(t, err)
	assert.True(t, res.RetrievalUsed)
	assert.Empty(t, res.Citations)
	assert.Len(t, conv.Messages, 2)
}

func TestTurnClassificationFailureLeavesHistoryUntouched(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{"not parseable at all"}}
	exec := NewTurnExecutor(llmStub, TurnConfig{}, nopLogger{})
	conv := &store.Conversation{ID: "s1"}

	_, err := exec.Execute(context.Background(), TurnInput{
		Conversation: conv,
		Message:      "hello",
		Retriever:    &stubRetriever{},
	})

	assert.Error(t, err)
	assert.Empty(t, conv.Messages)
}

func TestTurnGenerationFailureLeavesHistoryUntouched(t *testing.T) {
	llmStub := &scriptedLLM{
		responses: []string{`{"query_type": "document_search", "follow_up_question": "q"}`, ""},
		errs:      []error{nil, errors.New("model timeout")},
	}
	exec := NewTurnExecutor(llmStub, TurnConfig{}, nopLogger{})
	conv := &store.Conversation{ID: "s1"}

	_, err := exec.Execute(context.Background(), TurnInput{
		Conversation: conv,
		Message:      "how did revenue do?",
		Retriever:    &stubRetriever{batch: testBatch()},
	})

	assert.Error(t, err)
	assert.Empty(t, conv.Messages)
}

func TestTurnHistoryCap(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "greeting", "response": "Hi!"}`,
	}}
	exec := NewTurnExecutor(llmStub, TurnConfig{HistoryCap: 4}, nopLogger{})

	conv := &store.Conversation{ID: "s1"}
	for i := 0; i < 4; i++ {
		conv.Append(store.Message{Role: store.RoleUser, Content: "old"})
	}

	_, err := exec.Execute(context.Background(), TurnInput{
		Conversation: conv,
		Message:      "hi",
		Retriever:    &stubRetriever{},
	})

	assert.NoError(t, err)
	assert.Len(t, conv.Messages, 4)
	assert.Equal(t, "hi", conv.Messages[2].Content)
}

func TestQueryGreeting(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "greeting", "response": "Hello!"}`,
	}}
	exec := NewQueryExecutor(llmStub, 4, nopLogger{})

	res, err := exec.Execute(context.Background(), QueryInput{
		Question:        "hi",
		VectorRetriever: &stubRetriever{},
		WebRetriever:    &stubRetriever{},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Hello!", res.Answer)
	assert.False(t, res.UsedWebSearch)
}

func TestQueryExternalKnowledgeRefusedWithoutApproval(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "external_knowledge"}`,
	}}
	web := &stubRetriever{batch: testBatch()}
	exec := NewQueryExecutor(llmStub, 4, nopLogger{})

	res, err := exec.Execute(context.Background(), QueryInput{
		Question:         "who won the world cup?",
		ApproveWebSearch: false,
		VectorRetriever:  &stubRetriever{},
		WebRetriever:     web,
	})

	assert.NoError(t, err)
	assert.Equal(t, "I need external knowledge to answer this question, and web search is not enabled.", res.Answer)
	assert.False(t, res.UsedWebSearch)
	assert.Zero(t, web.calls)
}

func TestQueryExternalKnowledgeWithApproval(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "external_knowledge"}`,
		"Argentina won the 2022 World Cup [0].",
	}}
	web := &stubRetriever{batch: testBatch()}
	exec := NewQueryExecutor(llmStub, 4, nopLogger{})

	res, err := exec.Execute(context.Background(), QueryInput{
		Question:         "who won the world cup?",
		ApproveWebSearch: true,
		VectorRetriever:  &stubRetriever{},
		WebRetriever:     web,
	})

	assert.NoError(t, err)
	assert.True(t, res.UsedWebSearch)
	assert.Equal(t, 1, web.calls)
}

func TestQueryEscalatesToWebWhenVectorInsufficient(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "document_search", "follow_up_question": "q"}`,
		"I don't know based on the provided information.",
		"The answer from the web [0].",
	}}
	vector := &stubRetriever{batch: testBatch()}
	web := &stubRetriever{batch: testBatch()}
	exec := NewQueryExecutor(llmStub, 4, nopLogger{})

	res, err := exec.Execute(context.Background(), QueryInput{
		Question:         "what is the capital of mars?",
		ApproveWebSearch: true,
		VectorRetriever:  vector,
		WebRetriever:     web,
	})

	assert.NoError(t, err)
	assert.True(t, res.UsedWebSearch)
	assert.Equal(t, "The answer from the web [0].", res.Answer)
	assert.Equal(t, 1, vector.calls)
	assert.Equal(t, 1, web.calls)
}

func TestQueryInsufficientWithoutApprovalStaysOnVector(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		`{"query_type": "document_search", "follow_up_question": "q"}`,
		"I don't know based on the provided information.",
	}}
	web := &stubRetriever{batch: testBatch()}
	exec := NewQueryExecutor(llmStub, 4, nopLogger{})

	res, err := exec.Execute(context.Background(), QueryInput{
		Question:         "what is the capital of mars?",
		ApproveWebSearch: false,
		VectorRetriever:  &stubRetriever{batch: testBatch()},
		WebRetriever:     web,
	})

	assert.NoError(t, err)
	assert.False(t, res.UsedWebSearch)
	assert.Zero(t, web.calls)
}

func TestConverseAnswersAgainstSummary(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		"SUMMARY: User is asking about revenue.\nSTANDALONE QUESTION: What was the Q2 revenue?",
		"Q2 revenue was 4M [0].",
	}}
	retriever := &stubRetriever{batch: testBatch()}
	exec := NewConverseExecutor(llmStub, ConverseConfig{}, nopLogger{})

	conv := &store.Conversation{ID: "s1"}
	conv.Append(store.Message{Role: store.RoleUser, Content: "tell me about revenue"})
	conv.Append(store.Message{Role: store.RoleAssistant, Content: "Revenue grew in 2023."})

	res, err := exec.Execute(context.Background(), ConverseInput{
		Conversation: conv,
		Message:      "what about Q2?",
		Retriever:    retriever,
	})

	assert.NoError(t, err)
	assert.Equal(t, "What was the Q2 revenue?", retriever.lastQuery)
	assert.Len(t, res.Citations, 1)
	assert.Len(t, conv.Messages, 4)
}

func TestConverseFirstMessageSkipsSummarizerLLM(t *testing.T) {
	llmStub := &scriptedLLM{responses: []string{
		"An answer without citations.",
	}}
	retriever := &stubRetriever{batch: testBatch()}
	exec := NewConverseExecutor(llmStub, ConverseConfig{}, nopLogger{})

	conv := &store.Conversation{ID: "s1"}
	res, err := exec.Execute(context.Background(), ConverseInput{
		Conversation: conv,
		Message:      "what is this document about?",
		Retriever:    retriever,
	})

	assert.NoError(t, err)
	assert.Equal(t, "what is this document about?", retriever.lastQuery)
	assert.Equal(t, "An answer without citations.", res.Answer)
	// only the answer call reached the model
	assert.Equal(t, 1, llmStub.calls)
}
