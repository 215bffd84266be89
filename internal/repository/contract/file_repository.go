package contract

import (
	"context"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.UploadedFile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UploadedFile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UploadedFile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	CountByOwner(ctx context.Context) ([]entity.FileOwnerCount, error)
}
