package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName    string    `gorm:"type:varchar(512);not null"`
	StoragePath string    `gorm:"type:text;not null"`
	SizeBytes   int64     `gorm:"not null;default:0"`
	PageCount   int       `gorm:"not null;default:0"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(50);not null;default:'pending'"`
	Selected    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   *time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
