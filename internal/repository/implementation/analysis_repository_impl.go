package implementation

import (
	"context"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/mapper"
	"excel-analytics-be/internal/model"
	"excel-analytics-be/internal/pkg/apperror"
	"excel-analytics-be/internal/repository/contract"
	"excel-analytics-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnalysisRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnalysisMapper
}

func NewAnalysisRepository(db *gorm.DB) contract.AnalysisRepository {
	return &AnalysisRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnalysisMapper(),
	}
}

func (r *AnalysisRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AnalysisRepositoryImpl) Append(ctx context.Context, record *entity.AnalysisRecord, fileSpecs ...specification.Specification) (*entity.AnalysisRecord, error) {
	db := r.db.WithContext(ctx)

	// Bumping the parent counter takes the row lock that orders concurrent appends.
	bump := r.applySpecifications(db.Model(&model.UploadedFile{}).Where("id = ?", record.FileId), fileSpecs...).
		UpdateColumn("analysis_count", gorm.Expr("analysis_count + ?", 1))
	if bump.Error != nil {
		return nil, bump.Error
	}
	if bump.RowsAffected == 0 {
		return nil, apperror.NotFound("File not found")
	}

	var file model.UploadedFile
	if err := db.Select("analysis_count").Where("id = ?", record.FileId).Take(&file).Error; err != nil {
		return nil, err
	}

	m := r.mapper.ToModel(record)
	m.Sequence = file.AnalysisCount
	if err := db.Create(m).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(m), nil
}

func (r *AnalysisRepositoryImpl) HistoryLength(ctx context.Context, fileId uuid.UUID) (int64, error) {
	return r.Count(ctx, specification.ByFileID{FileID: fileId})
}

func (r *AnalysisRepositoryImpl) FindByFile(ctx context.Context, fileId uuid.UUID) ([]*entity.AnalysisRecord, error) {
	return r.FindAll(ctx, specification.ByFileID{FileID: fileId}, specification.OrderBy{Field: "sequence"})
}

func (r *AnalysisRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisRecord, error) {
	var models []*model.AnalysisRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AnalysisRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AnalysisRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AnalysisRepositoryImpl) DeleteByFile(ctx context.Context, fileId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("file_id = ?", fileId).Delete(&model.AnalysisRecord{}).Error
}
