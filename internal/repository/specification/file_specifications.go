package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByFileID struct {
	FileID uuid.UUID
}

func (s ByFileID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_id = ?", s.FileID)
}

// AnalysisOfOwner keeps analysis records whose file belongs to UserID.
type AnalysisOfOwner struct {
	UserID uuid.UUID
}

func (s AnalysisOfOwner) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_id IN (SELECT id FROM uploaded_files WHERE user_id = ?)", s.UserID)
}

// UploadedNewestFirst orders files by upload time, newest first.
type UploadedNewestFirst struct{}

func (s UploadedNewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("uploaded_at DESC")
}
