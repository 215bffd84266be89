package contract

import (
	"context"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/repository/specification"

	"github.com/google/uuid"
)

// AnalysisRepository stores the append-only analysis history of files.
// Records are never updated and only leave together with their file.
type AnalysisRepository interface {
	// Append assigns the next sequence of record.FileId and inserts the
	// record. fileSpecs further restrict which file may be appended to; a
	// file that does not match yields apperror.ErrNotFound. Run it inside
	// a unit of work transaction.
	Append(ctx context.Context, record *entity.AnalysisRecord, fileSpecs ...specification.Specification) (*entity.AnalysisRecord, error)
	HistoryLength(ctx context.Context, fileId uuid.UUID) (int64, error)
	// FindByFile returns the history of fileId, oldest first.
	FindByFile(ctx context.Context, fileId uuid.UUID) ([]*entity.AnalysisRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByFile(ctx context.Context, fileId uuid.UUID) error
}
