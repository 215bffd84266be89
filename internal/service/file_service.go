package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/pkg/apperror"
	"excel-analytics-be/internal/pkg/eventbus"
	"excel-analytics-be/internal/pkg/logger"
	"excel-analytics-be/internal/repository/specification"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/pkg/chart"
	"excel-analytics-be/pkg/spreadsheet"
	"excel-analytics-be/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type IFileService interface {
	Upload(ctx context.Context, identity entity.Identity, header *multipart.FileHeader) (*dto.UploadFileResponse, error)
	ListFiles(ctx context.Context, identity entity.Identity) ([]dto.FileResponse, error)
	GetData(ctx context.Context, identity entity.Identity, fileId uuid.UUID) (*dto.FileDataResponse, error)
	Analyze(ctx context.Context, identity entity.Identity, fileId uuid.UUID, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
	History(ctx context.Context, identity entity.Identity, fileId uuid.UUID) (*dto.AnalysisHistoryResponse, error)
	Delete(ctx context.Context, identity entity.Identity, fileId uuid.UUID) error
}

type fileService struct {
	ops      *fileOps
	maxBytes int64
}

func NewFileService(
	uowFactory unitofwork.RepositoryFactory,
	store storage.Storage,
	logger logger.ILogger,
	events eventbus.Publisher,
	maxBytes int64,
) IFileService {
	return &fileService{
		ops: &fileOps{
			uowFactory: uowFactory,
			storage:    store,
			logger:     logger,
			events:     events,
		},
		maxBytes: maxBytes,
	}
}

func (s *fileService) Upload(ctx context.Context, identity entity.Identity, header *multipart.FileHeader) (*dto.UploadFileResponse, error) {
	if header == nil {
		return nil, apperror.Validation("No file uploaded")
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return nil, apperror.Validation("File exceeds the upload size limit")
	}

	data, err := readUpload(header)
	if err != nil {
		return nil, apperror.Validation("Could not read uploaded file")
	}
	if len(data) == 0 {
		return nil, apperror.Validation("Uploaded file is empty")
	}

	format, err := spreadsheet.DetectFormat(header.Filename, data)
	if err != nil {
		return nil, apperror.Validation("Only Excel (.xlsx, .xlsm) and CSV files are allowed")
	}

	filename := uuid.NewString() + storedExtension(header.Filename, format)
	location, err := s.ops.storage.Write(ctx, filename, data)
	if err != nil {
		s.ops.logger.Error("FILE", "Failed to store upload", map[string]interface{}{
			"user_id": identity.UserId,
			"error":   err.Error(),
		})
		return nil, apperror.Storage("Error uploading file", err)
	}

	file := &entity.UploadedFile{
		UserId:       identity.UserId,
		OriginalName: header.Filename,
		Filename:     filename,
		Path:         location,
		Size:         int64(len(data)),
		MimeType:     declaredType(header, data),
		UploadedAt:   time.Now(),
	}

	uow := s.ops.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FileRepository().Create(ctx, file); err != nil {
		s.ops.discard(ctx, file.Id, location)
		return nil, err
	}

	table, err := s.decode(ctx, file)
	if err != nil {
		return nil, err
	}

	schema := spreadsheet.Sample(table, spreadsheet.PreviewRows)

	s.ops.logger.Info("FILE", "File uploaded", map[string]interface{}{
		"file_id":    file.Id,
		"user_id":    identity.UserId,
		"size":       file.Size,
		"total_rows": schema.TotalRows,
	})
	s.ops.events.PublishFileUploaded(ctx, file.Id, identity.UserId, file.OriginalName, schema.TotalRows)

	return &dto.UploadFileResponse{
		FileId:       file.Id,
		OriginalName: file.OriginalName,
		Columns:      schema.Columns,
		SampleData:   schema.Preview,
		TotalRows:    schema.TotalRows,
	}, nil
}

func (s *fileService) ListFiles(ctx context.Context, identity entity.Identity) ([]dto.FileResponse, error) {
	uow := s.ops.uowFactory.NewUnitOfWork(ctx)
	files, err := uow.FileRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: identity.UserId},
		specification.UploadedNewestFirst{},
	)
	if err != nil {
		return nil, err
	}
	return toFileResponses(files), nil
}

func (s *fileService) GetData(ctx context.Context, identity entity.Identity, fileId uuid.UUID) (*dto.FileDataResponse, error) {
	file, err := s.ops.resolve(ctx, fileId, OwnerScope(identity.UserId))
	if err != nil {
		return nil, err
	}

	table, err := s.decode(ctx, file)
	if err != nil {
		return nil, err
	}

	rows := table.Rows
	if rows == nil {
		rows = []spreadsheet.Row{}
	}
	columns := table.Columns
	if columns == nil {
		columns = []string{}
	}

	return &dto.FileDataResponse{
		Data:      rows,
		Columns:   columns,
		TotalRows: table.Len(),
	}, nil
}

func (s *fileService) Analyze(ctx context.Context, identity entity.Identity, fileId uuid.UUID, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	if req == nil || strings.TrimSpace(req.ChartType) == "" || req.XAxis == "" || req.YAxis == "" {
		return nil, apperror.Validation("chartType, xAxis and yAxis are required")
	}

	scope := OwnerScope(identity.UserId)
	file, err := s.ops.resolve(ctx, fileId, scope)
	if err != nil {
		return nil, err
	}

	table, err := s.decode(ctx, file)
	if err != nil {
		return nil, err
	}

	dataset := chart.Project(table, req.XAxis, req.YAxis, req.ChartType)
	raw, err := json.Marshal(dataset)
	if err != nil {
		return nil, err
	}

	var record *entity.AnalysisRecord
	err = s.ops.uowFactory.NewUnitOfWork(ctx).Do(ctx, func(tx unitofwork.UnitOfWork) error {
		record, err = tx.AnalysisRepository().Append(ctx, &entity.AnalysisRecord{
			FileId:      file.Id,
			ChartType:   req.ChartType,
			XAxis:       req.XAxis,
			YAxis:       req.YAxis,
			GeneratedAt: time.Now(),
			ChartData:   raw,
		}, scope.specs...)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.ops.events.PublishAnalysisGenerated(ctx, file.Id, identity.UserId, record.Sequence, record.ChartType)

	return &dto.AnalyzeResponse{
		ChartData:  dataset,
		AnalysisId: record.Id,
		Sequence:   record.Sequence,
	}, nil
}

func (s *fileService) History(ctx context.Context, identity entity.Identity, fileId uuid.UUID) (*dto.AnalysisHistoryResponse, error) {
	file, err := s.ops.resolve(ctx, fileId, OwnerScope(identity.UserId))
	if err != nil {
		return nil, err
	}

	uow := s.ops.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.AnalysisRepository().FindByFile(ctx, file.Id)
	if err != nil {
		return nil, err
	}

	analyses := make([]dto.AnalysisRecordResponse, 0, len(records))
	for _, r := range records {
		analyses = append(analyses, dto.AnalysisRecordResponse{
			Id:          r.Id,
			Sequence:    r.Sequence,
			ChartType:   r.ChartType,
			XAxis:       r.XAxis,
			YAxis:       r.YAxis,
			GeneratedAt: r.GeneratedAt,
			ChartData:   r.ChartData,
		})
	}

	return &dto.AnalysisHistoryResponse{
		FileId:        file.Id,
		HistoryLength: len(analyses),
		Analyses:      analyses,
	}, nil
}

func (s *fileService) Delete(ctx context.Context, identity entity.Identity, fileId uuid.UUID) error {
	return s.ops.delete(ctx, fileId, OwnerScope(identity.UserId), false)
}

// decode reads and parses the stored bytes of file. Unreadable or missing
// spreadsheets are decode errors; any other read failure is a storage error.
func (s *fileService) decode(ctx context.Context, file *entity.UploadedFile) (*spreadsheet.Table, error) {
	table, err := spreadsheet.DecodeFile(ctx, s.ops.storage, file.Path, file.Filename)
	if err == nil {
		return table, nil
	}

	details := map[string]interface{}{
		"file_id": file.Id,
		"error":   err.Error(),
	}
	var decodeErr *spreadsheet.DecodeError
	if errors.As(err, &decodeErr) {
		s.ops.logger.Error("FILE", "Failed to decode stored file", details)
		return nil, apperror.Decode(err)
	}
	s.ops.logger.Error("FILE", "Failed to read stored file", details)
	return nil, apperror.Storage("Error reading file", err)
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// declaredType is the media type the client sent with the part, or the
// sniffed one when the part carries none.
func declaredType(header *multipart.FileHeader, data []byte) string {
	if ct := strings.TrimSpace(header.Header.Get("Content-Type")); ct != "" {
		return ct
	}
	return mimetype.Detect(data).String()
}

// storedExtension keeps a recognised extension and otherwise names the file
// after its sniffed format.
func storedExtension(originalName string, format spreadsheet.Format) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if f, ok := spreadsheet.FormatOf(ext); ok && f == format {
		return ext
	}
	if format == spreadsheet.FormatCSV {
		return ".csv"
	}
	return ".xlsx"
}
