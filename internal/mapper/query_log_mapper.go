package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/model"
	"doc-chat-be/pkg/store"
)

type QueryLogMapper struct{}

func NewQueryLogMapper() *QueryLogMapper {
	return &QueryLogMapper{}
}

func (m *QueryLogMapper) ToEntity(l *model.QueryLog) *entity.QueryLog {
	if l == nil {
		return nil
	}

	var citations []store.Citation
	if len(l.Citations) > 0 {
		// Corrupt rows degrade to no citations rather than failing reads
		_ = json.Unmarshal(l.Citations, &citations)
	}

	return &entity.QueryLog{
		Id:            l.Id,
		UserId:        l.UserId,
		SessionId:     l.SessionId,
		Mode:          entity.QueryMode(l.Mode),
		Intent:        l.Intent,
		Question:      l.Question,
		Answer:        l.Answer,
		Citations:     citations,
		UsedWebSearch: l.UsedWebSearch,
		LatencyMs:     l.LatencyMs,
		CreatedAt:     l.CreatedAt,
	}
}

func (m *QueryLogMapper) ToModel(l *entity.QueryLog) *model.QueryLog {
	if l == nil {
		return nil
	}

	var citations datatypes.JSON
	if len(l.Citations) > 0 {
		if raw, err := json.Marshal(l.Citations); err == nil {
			citations = raw
		}
	}

	return &model.QueryLog{
		Id:            l.Id,
		UserId:        l.UserId,
		SessionId:     l.SessionId,
		Mode:          string(l.Mode),
		Intent:        l.Intent,
		Question:      l.Question,
		Answer:        l.Answer,
		Citations:     citations,
		UsedWebSearch: l.UsedWebSearch,
		LatencyMs:     l.LatencyMs,
		CreatedAt:     l.CreatedAt,
	}
}
