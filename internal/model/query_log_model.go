package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type QueryLog struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionId     string         `gorm:"type:varchar(64);index"`
	Mode          string         `gorm:"type:varchar(20);not null"`
	Intent        string         `gorm:"type:varchar(50)"`
	Question      string         `gorm:"type:text;not null"`
	Answer        string         `gorm:"type:text"`
	Citations     datatypes.JSON `gorm:"type:jsonb"`
	UsedWebSearch bool           `gorm:"not null;default:false"`
	LatencyMs     int64          `gorm:"not null;default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}
