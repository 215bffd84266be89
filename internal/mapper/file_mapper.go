package mapper

import (
	"encoding/json"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/model"

	"gorm.io/datatypes"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.UploadedFile) *entity.UploadedFile {
	if f == nil {
		return nil
	}
	return &entity.UploadedFile{
		Id:            f.Id,
		UserId:        f.UserId,
		OriginalName:  f.OriginalName,
		Filename:      f.Filename,
		Path:          f.Path,
		Size:          f.Size,
		MimeType:      f.MimeType,
		AnalysisCount: f.AnalysisCount,
		UploadedAt:    f.UploadedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.UploadedFile) *model.UploadedFile {
	if f == nil {
		return nil
	}
	return &model.UploadedFile{
		Id:            f.Id,
		UserId:        f.UserId,
		OriginalName:  f.OriginalName,
		Filename:      f.Filename,
		Path:          f.Path,
		Size:          f.Size,
		MimeType:      f.MimeType,
		AnalysisCount: f.AnalysisCount,
		UploadedAt:    f.UploadedAt,
	}
}

func (m *FileMapper) ToEntities(files []*model.UploadedFile) []*entity.UploadedFile {
	entities := make([]*entity.UploadedFile, len(files))
	for i, f := range files {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

type AnalysisMapper struct{}

func NewAnalysisMapper() *AnalysisMapper {
	return &AnalysisMapper{}
}

func (m *AnalysisMapper) ToEntity(a *model.AnalysisRecord) *entity.AnalysisRecord {
	if a == nil {
		return nil
	}
	return &entity.AnalysisRecord{
		Id:          a.Id,
		FileId:      a.FileId,
		Sequence:    a.Sequence,
		ChartType:   a.ChartType,
		XAxis:       a.XAxis,
		YAxis:       a.YAxis,
		GeneratedAt: a.GeneratedAt,
		ChartData:   json.RawMessage(a.ChartData),
	}
}

func (m *AnalysisMapper) ToModel(a *entity.AnalysisRecord) *model.AnalysisRecord {
	if a == nil {
		return nil
	}
	return &model.AnalysisRecord{
		Id:          a.Id,
		FileId:      a.FileId,
		Sequence:    a.Sequence,
		ChartType:   a.ChartType,
		XAxis:       a.XAxis,
		YAxis:       a.YAxis,
		GeneratedAt: a.GeneratedAt,
		ChartData:   datatypes.JSON(a.ChartData),
	}
}

func (m *AnalysisMapper) ToEntities(records []*model.AnalysisRecord) []*entity.AnalysisRecord {
	entities := make([]*entity.AnalysisRecord, len(records))
	for i, a := range records {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
