package dto

type AskRequest struct {
	Question         string `json:"question" validate:"required"`
	WordLength       int    `json:"word_length" validate:"omitempty,min=10,max=1000"`
	ApproveWebSearch bool   `json:"approve_web_search"`
}

type AskResponse struct {
	Answer        string        `json:"answer"`
	Citations     []CitationDTO `json:"citations"`
	UsedWebSearch bool          `json:"used_web_search"`
}

type ConverseRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type ConverseResponse struct {
	SessionId string        `json:"session_id"`
	Answer    string        `json:"answer"`
	Citations []CitationDTO `json:"citations"`
}
