package dto

import (
	"time"
)

type StartChatResponse struct {
	SessionId string               `json:"session_id"`
	Greeting  string               `json:"greeting"`
	Messages  []ChatHistoryMessage `json:"messages"`
}

// SessionId is optional: an absent or unknown id starts a new session.
type SendMessageRequest struct {
	SessionId string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

type CitationDTO struct {
	SourceId int    `json:"source_id"`
	FileName string `json:"file_name,omitempty"`
	Page     int    `json:"page,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
	Error    string `json:"error,omitempty"`
}

type SendMessageResponse struct {
	SessionId     string               `json:"session_id"`
	Answer        string               `json:"answer"`
	Intent        string               `json:"intent,omitempty"`
	Citations     []CitationDTO        `json:"citations"`
	RetrievalUsed bool                 `json:"retrieval_used"`
	History       []ChatHistoryMessage `json:"history"`
}

type ChatHistoryMessage struct {
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Citations []CitationDTO `json:"citations,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionId string               `json:"session_id"`
	Messages  []ChatHistoryMessage `json:"messages"`
}
