package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name         string
		response     string
		wantType     string
		wantResponse string
		wantFollowUp string
		wantErr      bool
	}{
		{
			name:         "plain json",
			response:     `{"query_type": "greeting", "response": "Hello! How can I help?"}`,
			wantType:     "greeting",
			wantResponse: "Hello! How can I help?",
		},
		{
			name:         "json inside fenced block",
			response:     "```json\n{\"query_type\": \"document_search\", \"follow_up_question\": \"What was the 2023 revenue?\"}\n```",
			wantType:     "document_search",
			wantFollowUp: "What was the 2023 revenue?",
		},
		{
			name:     "json with surrounding prose",
			response: "Here is my classification: {\"query_type\": \"off_topic\", \"response\": \"I can only discuss your documents.\"}",
			wantType: "off_topic", wantResponse: "I can only discuss your documents.",
		},
		{
			name:     "uppercase type normalized",
			response: `{"query_type": "GREETING", "response": "Hi"}`,
			wantType: "greeting", wantResponse: "Hi",
		},
		{
			name: "marker layout",
			response: "CLASSIFICATION: document_search\nRESPONSE:\nFOLLOW_UP_QUESTION: What does chapter 2 cover?",
			wantType:     "document_search",
			wantFollowUp: "What does chapter 2 cover?",
		},
		{
			name:         "marker layout with response only",
			response:     "CLASSIFICATION: greeting\nRESPONSE: Hello there!",
			wantType:     "greeting",
			wantResponse: "Hello there!",
		},
		{
			name:     "free text without structure",
			response: "I think the user is just saying hi.",
			wantErr:  true,
		},
		{
			name:     "empty output",
			response: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := ParseDecision(tt.response)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantType, decision.QueryType)
			assert.Equal(t, tt.wantResponse, decision.Response)
			assert.Equal(t, tt.wantFollowUp, decision.FollowUpQuestion)
		})
	}
}

func TestNeedsRetrieval(t *testing.T) {
	assert.True(t, (&Decision{QueryType: IntentDocumentSearch}).NeedsRetrieval())
	assert.False(t, (&Decision{QueryType: IntentGreeting}).NeedsRetrieval())
	assert.False(t, (&Decision{QueryType: IntentConversationReference}).NeedsRetrieval())
	assert.False(t, (&Decision{QueryType: IntentOffTopic}).NeedsRetrieval())
}
