package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/rag/citation"
	"doc-chat-be/pkg/rag/prompt"
)

// Result is a generated answer plus the citation IDs found in its text.
type Result struct {
	Answer    string
	Citations []int
}

// Generator produces grounded answers. Degraded context strings (the
// "No relevant documents found." and "Error retrieving documents: ..."
// forms) pass through untouched; the model is told about the failure
// rather than the call being aborted.
type Generator struct {
	llmProvider llm.LLMProvider
}

func NewGenerator(llmProvider llm.LLMProvider) *Generator {
	return &Generator{llmProvider: llmProvider}
}

// Chat generates the conversational answer for the retrieval path.
func (g *Generator) Chat(ctx context.Context, context_, message, chatHistory string) (*Result, error) {
	p := prompt.ChatAnswer(context_, message, chatHistory)
	return g.generate(ctx, p)
}

// Single generates the single-shot answer with the word budget applied.
func (g *Generator) Single(ctx context.Context, context_, question string, wordBudget int) (*Result, error) {
	p := prompt.RAGAnswer(wordBudget, context_, question)
	return g.generate(ctx, p)
}

// SummaryGrounded generates an answer against condensed history instead
// of the raw transcript.
func (g *Generator) SummaryGrounded(ctx context.Context, historySummary, context_, question string, wordBudget int) (*Result, error) {
	p := prompt.SummaryGroundedAnswer(historySummary, context_, question, wordBudget)
	return g.generate(ctx, p)
}

func (g *Generator) generate(ctx context.Context, p string) (*Result, error) {
	response, err := g.llmProvider.Generate(ctx, p, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	answer := ParseAnswer(response)
	if answer == "" {
		return nil, fmt.Errorf("answer generation produced empty output")
	}

	return &Result{
		Answer:    answer,
		Citations: citation.Extract(answer),
	}, nil
}

// ParseAnswer unwraps the {"answer": "..."} envelope when the model
// emits one, otherwise returns the raw text.
func ParseAnswer(response string) string {
	cleaned := prompt.TrimMarkers(response)

	startIdx := strings.Index(cleaned, "{")
	endIdx := strings.LastIndex(cleaned, "}")
	if startIdx != -1 && endIdx > startIdx {
		var envelope struct {
			Answer string `json:"answer"`
		}
		if err := json.Unmarshal([]byte(cleaned[startIdx:endIdx+1]), &envelope); err == nil && envelope.Answer != "" {
			return strings.TrimSpace(envelope.Answer)
		}
	}

	return strings.TrimSpace(cleaned)
}
