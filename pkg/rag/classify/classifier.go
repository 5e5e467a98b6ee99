// Package classify decides, per user message, whether the assistant can
// reply directly or needs the retrieval path.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"doc-chat-be/pkg/llm"
	"doc-chat-be/pkg/rag/prompt"
)

// Chat intents.
const (
	IntentGreeting              = "greeting"
	IntentDocumentSearch        = "document_search"
	IntentConversationReference = "conversation_reference"
	IntentOffTopic              = "off_topic"
	// Single-shot only.
	IntentExternalKnowledge = "external_knowledge"
)

// Decision is the classifier's verdict for one message. Response is set
// for intents answered directly; FollowUpQuestion is the standalone
// retrieval query for document_search and may be empty when the model
// failed to rewrite.
type Decision struct {
	QueryType        string `json:"query_type"`
	Response         string `json:"response"`
	FollowUpQuestion string `json:"follow_up_question"`
}

// NeedsRetrieval reports whether the decision routes to the retrieval
// and answer path.
func (d *Decision) NeedsRetrieval() bool {
	return d.QueryType == IntentDocumentSearch
}

// Classifier wraps the LLM call and its two output formats: structured
// JSON when the model cooperates, the CLASSIFICATION/RESPONSE/
// FOLLOW_UP_QUESTION marker layout otherwise.
type Classifier struct {
	llmProvider llm.LLMProvider
}

func NewClassifier(llmProvider llm.LLMProvider) *Classifier {
	return &Classifier{llmProvider: llmProvider}
}

// ClassifyChat classifies a conversational message against the session
// history. An unparseable model output is an error; the caller decides
// whether the turn survives.
func (c *Classifier) ClassifyChat(ctx context.Context, message, documentDescriptions, chatHistory string) (*Decision, error) {
	p := prompt.ChatDecision(documentDescriptions, message, chatHistory)

	response, err := c.llmProvider.Generate(ctx, p, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("classification call failed: %w", err)
	}

	decision, err := ParseDecision(response)
	if err != nil {
		return nil, fmt.Errorf("classification output unusable: %w", err)
	}

	if !validChatIntent(decision.QueryType) {
		return nil, fmt.Errorf("classification output unusable: unknown intent %q", decision.QueryType)
	}

	return decision, nil
}

// ClassifyQuery is the single-shot three way classification used by the
// stateless query endpoint.
func (c *Classifier) ClassifyQuery(ctx context.Context, question, documentDescriptions string) (*Decision, error) {
	p := prompt.QueryDecision(documentDescriptions, question)

	response, err := c.llmProvider.Generate(ctx, p, llm.WithTemperature(0.0))
	if err != nil {
		return nil, fmt.Errorf("classification call failed: %w", err)
	}

	decision, err := ParseDecision(response)
	if err != nil {
		return nil, fmt.Errorf("classification output unusable: %w", err)
	}

	switch decision.QueryType {
	case IntentGreeting, IntentDocumentSearch, IntentExternalKnowledge:
		return decision, nil
	default:
		return nil, fmt.Errorf("classification output unusable: unknown intent %q", decision.QueryType)
	}
}

// ParseDecision tries structured JSON first, then the marker layout.
func ParseDecision(response string) (*Decision, error) {
	if jsonContent := extractJSON(response); jsonContent != "" {
		var decision Decision
		if err := json.Unmarshal([]byte(jsonContent), &decision); err == nil && decision.QueryType != "" {
			decision.QueryType = strings.ToLower(strings.TrimSpace(decision.QueryType))
			decision.Response = strings.TrimSpace(decision.Response)
			decision.FollowUpQuestion = strings.TrimSpace(decision.FollowUpQuestion)
			return &decision, nil
		}
	}

	return parseMarkers(response)
}

func parseMarkers(response string) (*Decision, error) {
	cleaned := prompt.TrimMarkers(response)
	idx := strings.Index(cleaned, "CLASSIFICATION:")
	if idx == -1 {
		return nil, fmt.Errorf("no CLASSIFICATION marker in output")
	}
	cleaned = cleaned[idx:]

	decision := &Decision{}
	decision.QueryType = strings.ToLower(sectionAfter(cleaned, "CLASSIFICATION:", "RESPONSE:", "FOLLOW_UP_QUESTION:"))
	decision.Response = sectionAfter(cleaned, "RESPONSE:", "FOLLOW_UP_QUESTION:", "")
	decision.FollowUpQuestion = sectionAfter(cleaned, "FOLLOW_UP_QUESTION:", "", "")

	if decision.QueryType == "" {
		return nil, fmt.Errorf("empty classification in output")
	}
	return decision, nil
}

// sectionAfter returns the trimmed text between marker and the first of
// the stop markers that follows it.
func sectionAfter(s, marker string, stops ...string) string {
	idx := strings.Index(s, marker)
	if idx == -1 {
		return ""
	}
	rest := s[idx+len(marker):]
	for _, stop := range stops {
		if stop == "" {
			continue
		}
		if stopIdx := strings.Index(rest, stop); stopIdx != -1 {
			rest = rest[:stopIdx]
		}
	}
	return strings.TrimSpace(rest)
}

func validChatIntent(intent string) bool {
	switch intent {
	case IntentGreeting, IntentDocumentSearch, IntentConversationReference, IntentOffTopic:
		return true
	}
	return false
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
