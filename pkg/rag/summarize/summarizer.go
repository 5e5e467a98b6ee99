package summarize

import (
	"context"
	"strings"

	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/rag/history"
	"doc-chat-be/pkg/rag/prompt"
	"doc-chat-be/pkg/store"
)

// Result carries the condensed history and the reformulated standalone
// question. StandaloneQuestion is never empty: parse failures fall back
// to the original message.
type Result struct {
	Summary            string
	StandaloneQuestion string
}

// Summarizer condenses conversation history before retrieval so follow
// up questions resolve their references.
type Summarizer struct {
	llmProvider llm.LLMProvider
	window      int
}

func NewSummarizer(llmProvider llm.LLMProvider, window int) *Summarizer {
	if window <= 0 {
		window = 10
	}
	return &Summarizer{
		llmProvider: llmProvider,
		window:      window,
	}
}

// Summarize produces the summary and standalone question for a message.
// With fewer than two history messages there is nothing to condense and
// no LLM call is made.
func (s *Summarizer) Summarize(ctx context.Context, messages []store.Message, currentMessage string) (*Result, error) {
	if len(messages) < 2 {
		return &Result{
			Summary:            "",
			StandaloneQuestion: currentMessage,
		}, nil
	}

	formatted := history.Format(messages, s.window)
	p := prompt.HistorySummary(formatted, currentMessage)

	response, err := s.llmProvider.Generate(ctx, p, llm.WithTemperature(0.2))
	if err != nil {
		return nil, err
	}

	return parseResult(response, currentMessage), nil
}

// parseResult splits the SUMMARY / STANDALONE QUESTION layout. Output
// missing either marker degrades to no summary and the original message.
func parseResult(response, currentMessage string) *Result {
	result := &Result{
		Summary:            "",
		StandaloneQuestion: currentMessage,
	}

	if !strings.Contains(response, "SUMMARY:") || !strings.Contains(response, "STANDALONE QUESTION:") {
		return result
	}

	parts := strings.SplitN(response, "STANDALONE QUESTION:", 2)
	summary := strings.TrimSpace(strings.Replace(parts[0], "SUMMARY:", "", 1))
	question := strings.TrimSpace(parts[1])

	result.Summary = summary
	if question != "" {
		result.StandaloneQuestion = question
	}
	return result
}
