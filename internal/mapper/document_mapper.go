package mapper

import (
	"doc-chat-be/internal/entity"
	"doc-chat-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:          d.Id,
		UserId:      d.UserId,
		FileName:    d.FileName,
		StoragePath: d.StoragePath,
		SizeBytes:   d.SizeBytes,
		PageCount:   d.PageCount,
		Description: d.Description,
		Status:      entity.DocumentStatus(d.Status),
		Selected:    d.Selected,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:          d.Id,
		UserId:      d.UserId,
		FileName:    d.FileName,
		StoragePath: d.StoragePath,
		SizeBytes:   d.SizeBytes,
		PageCount:   d.PageCount,
		Description: d.Description,
		Status:      string(d.Status),
		Selected:    d.Selected,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
