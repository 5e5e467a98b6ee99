package summarize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/store"
)

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.calls++
	return s.response, s.err
}

func makeHistory(n int) []store.Message {
	msgs := make([]store.Message, n)
	for i := range msgs {
		msgs[i] = store.Message{Role: store.RoleUser, Content: "earlier message"}
	}
	return msgs
}

func TestSummarizeShortHistorySkipsLLM(t *testing.T) {
	stub := &stubLLM{}
	s := NewSummarizer(stub, 10)

	res, err := s.Summarize(context.Background(), makeHistory(1), "What about Q2?")

	assert.NoError(t, err)
	assert.Equal(t, "", res.Summary)
	assert.Equal(t, "What about Q2?", res.StandaloneQuestion)
	assert.Zero(t, stub.calls)
}

func TestSummarizeParsesMarkers(t *testing.T) {
	stub := &stubLLM{
		response: "SUMMARY: The user asked about 2023 revenue.\nSTANDALONE QUESTION: What was the revenue in Q2 2023?",
	}
	s := NewSummarizer(stub, 10)

	res, err := s.Summarize(context.Background(), makeHistory(4), "What about Q2?")

	assert.NoError(t, err)
	assert.Equal(t, "The user asked about 2023 revenue.", res.Summary)
	assert.Equal(t, "What was the revenue in Q2 2023?", res.StandaloneQuestion)
	assert.Equal(t, 1, stub.calls)
}

func TestSummarizeDegradesOnUnparseableOutput(t *testing.T) {
	stub := &stubLLM{response: "the user wants revenue numbers"}
	s := NewSummarizer(stub, 10)

	res, err := s.Summarize(context.Background(), makeHistory(4), "What about Q2?")

	assert.NoError(t, err)
	assert.Equal(t, "", res.Summary)
	assert.Equal(t, "What about Q2?", res.StandaloneQuestion)
}

func TestSummarizeEmptyStandaloneFallsBack(t *testing.T) {
	stub := &stubLLM{response: "SUMMARY: Chat about revenue.\nSTANDALONE QUESTION:"}
	s := NewSummarizer(stub, 10)

	res, err := s.Summarize(context.Background(), makeHistory(4), "What about Q2?")

	assert.NoError(t, err)
	assert.Equal(t, "Chat about revenue.", res.Summary)
	assert.Equal(t, "What about Q2?", res.StandaloneQuestion)
}

func TestSummarizePropagatesLLMError(t *testing.T) {
	stub := &stubLLM{err: errors.New("model unavailable")}
	s := NewSummarizer(stub, 10)

	_, err := s.Summarize(context.Background(), makeHistory(4), "What about Q2?")

	assert.Error(t, err)
}
