package entity

import (
	"time"

	"github.com/google/uuid"

	"doc-chat-be/pkg/store"
)

type QueryMode string

const (
	QueryModeChat     QueryMode = "chat"
	QueryModeQuery    QueryMode = "query"
	QueryModeConverse QueryMode = "converse"
)

// QueryLog records one answered question for the usage dashboard.
type QueryLog struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	SessionId     string
	Mode          QueryMode
	Intent        string
	Question      string
	Answer        string
	Citations     []store.Citation
	UsedWebSearch bool
	LatencyMs     int64
	CreatedAt     time.Time
}
