package answer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-chat-be/pkg/llm"
)

type stubLLM struct {
	response string
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.response, nil
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "raw text passes through",
			response: "Revenue grew by 12 percent [0].",
			want:     "Revenue grew by 12 percent [0].",
		},
		{
			name:     "json envelope unwrapped",
			response: `{"answer": "Revenue grew by 12 percent [0]."}`,
			want:     "Revenue grew by 12 percent [0].",
		},
		{
			name:     "fenced json envelope unwrapped",
			response: "```json\n{\"answer\": \"Costs fell [1].\"}\n```",
			want:     "Costs fell [1].",
		},
		{
			name:     "braces without answer key stay raw",
			response: `The formula is {x + y}.`,
			want:     `The formula is {x + y}.`,
		},
		{
			name:     "surrounding whitespace trimmed",
			response: "  \n An answer. \n",
			want:     "An answer.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAnswer(tt.response))
		})
	}
}

func TestGenerateExtractsCitations(t *testing.T) {
	g := NewGenerator(&stubLLM{response: "Revenue grew [0] and costs fell [2]."})

	res, err := g.Single(context.Background(), "some context", "what happened?", 250)

	assert.NoError(t, err)
	assert.Equal(t, "Revenue grew [0] and costs fell [2].", res.Answer)
	assert.Equal(t, []int{0, 2}, res.Citations)
}

func TestGenerateRejectsEmptyAnswer(t *testing.T) {
	g := NewGenerator(&stubLLM{response: "   "})

	_, err := g.Chat(context.Background(), "ctx", "msg", "")

	assert.Error(t, err)
}
