// FILE: internal/entity/file_entity.go
package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UploadedFile struct {
	Id            uuid.UUID
	UserId        uuid.UUID // Owner
	OriginalName  string
	Filename      string // Storage-assigned name
	Path          string // Opaque storage location
	Size          int64
	MimeType      string
	AnalysisCount int
	UploadedAt    time.Time
}

// AnalysisRecord is one entry of a file's append-only analysis history.
// Sequence starts at 1 and orders the history.
type AnalysisRecord struct {
	Id          uuid.UUID
	FileId      uuid.UUID
	Sequence    int
	ChartType   string
	XAxis       string
	YAxis       string
	GeneratedAt time.Time
	ChartData   json.RawMessage
}

// FileOwnerCount is the number of files one user owns.
type FileOwnerCount struct {
	UserId uuid.UUID
	Count  int64
}
