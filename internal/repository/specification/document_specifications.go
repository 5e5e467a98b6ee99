package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy filters rows by their user_id column.
type OwnedBy struct {
	UserId uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// SelectedOnly keeps documents the user marked active for retrieval.
type SelectedOnly struct{}

func (s SelectedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("selected = ?", true)
}

// ByStatus filters documents by indexing status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByDocumentID filters embedding rows by their parent document.
type ByDocumentID struct {
	DocumentId uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentId)
}

// ByDocumentIDs filters embedding rows to a set of parent documents.
type ByDocumentIDs struct {
	DocumentIds []uuid.UUID
}

func (s ByDocumentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id IN ?", s.DocumentIds)
}

// CreatedAfter keeps rows newer than the given boundary, used by the
// dashboard windows.
type CreatedAfter struct {
	Boundary interface{}
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Boundary)
}
