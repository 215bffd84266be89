package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UploadedFile struct {
	Id            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserId        uuid.UUID        `gorm:"type:uuid;not null;index"`
	OriginalName  string           `gorm:"type:varchar(255);not null"`
	Filename      string           `gorm:"type:varchar(255);not null"`
	Path          string           `gorm:"type:text;not null"`
	Size          int64            `gorm:"not null"`
	MimeType      string           `gorm:"type:varchar(255);not null"`
	AnalysisCount int              `gorm:"not null;default:0"`
	UploadedAt    time.Time        `gorm:"not null;index"`
	Analyses      []AnalysisRecord `gorm:"foreignKey:FileId;constraint:OnDelete:CASCADE"`
}

func (UploadedFile) TableName() string {
	return "uploaded_files"
}

func (f *UploadedFile) BeforeCreate(tx *gorm.DB) error {
	if f.Id == uuid.Nil {
		f.Id = uuid.New()
	}
	return nil
}

type AnalysisRecord struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FileId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_analysis_file_seq,priority:1"`
	Sequence    int            `gorm:"not null;uniqueIndex:idx_analysis_file_seq,priority:2"`
	ChartType   string         `gorm:"type:varchar(50);not null"`
	XAxis       string         `gorm:"type:varchar(255);not null"`
	YAxis       string         `gorm:"type:varchar(255);not null"`
	GeneratedAt time.Time      `gorm:"not null"`
	ChartData   datatypes.JSON `gorm:"not null"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}

func (a *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if a.Id == uuid.Nil {
		a.Id = uuid.New()
	}
	return nil
}

// All lists every model owned by this service, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UploadedFile{},
		&AnalysisRecord{},
	}
}
