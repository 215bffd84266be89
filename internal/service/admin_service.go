package service

import (
	"context"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/pkg/apperror"
	"excel-analytics-be/internal/pkg/eventbus"
	"excel-analytics-be/internal/pkg/logger"
	"excel-analytics-be/internal/repository/specification"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/pkg/storage"

	"github.com/google/uuid"
)

const recentLimit = 5

type IAdminService interface {
	GetStats(ctx context.Context) (*dto.AdminStatsResponse, error)
	ListUsers(ctx context.Context) ([]dto.AdminUserResponse, error)
	ListAllFiles(ctx context.Context) ([]dto.AdminFileResponse, error)
	ListUserFiles(ctx context.Context, userId uuid.UUID) (*dto.UserFilesResponse, error)
	DeleteFile(ctx context.Context, fileId uuid.UUID) error
	GetLogs(ctx context.Context, req *dto.LogQueryRequest) (*dto.LogPageResponse, error)
}

type adminService struct {
	ops    *fileOps
	logger logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	store storage.Storage,
	logger logger.ILogger,
	events eventbus.Publisher,
) IAdminService {
	return &adminService{
		ops: &fileOps{
			uowFactory: uowFactory,
			storage:    store,
			logger:     logger,
			events:     events,
		},
		logger: logger,
	}
}

func (s *adminService) GetStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	uow := s.ops.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAdmins, err := uow.UserRepository().Count(ctx, specification.ByRole{Role: string(entity.UserRoleAdmin)})
	if err != nil {
		return nil, err
	}
	totalFiles, err := uow.FileRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAnalyses, err := uow.AnalysisRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	recentFiles, err := uow.FileRepository().FindAll(ctx,
		specification.UploadedNewestFirst{},
		specification.Pagination{Limit: recentLimit},
	)
	if err != nil {
		return nil, err
	}
	files, err := s.withOwners(ctx, uow, recentFiles)
	if err != nil {
		return nil, err
	}

	recentUsers, err := uow.UserRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: recentLimit},
	)
	if err != nil {
		return nil, err
	}
	users := make([]dto.UserResponse, 0, len(recentUsers))
	for _, u := range recentUsers {
		users = append(users, toUserResponse(u))
	}

	return &dto.AdminStatsResponse{
		Stats: dto.AdminStats{
			TotalUsers:    totalUsers,
			TotalFiles:    totalFiles,
			TotalAdmins:   totalAdmins,
			RegularUsers:  totalUsers - totalAdmins,
			TotalAnalyses: totalAnalyses,
		},
		RecentFiles: files,
		RecentUsers: users,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]dto.AdminUserResponse, error) {
	uow := s.ops.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}
	counts, err := uow.FileRepository().CountByOwner(ctx)
	if err != nil {
		return nil, err
	}

	byOwner := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		byOwner[c.UserId] = c.Count
	}

	res := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, dto.AdminUserResponse{
			UserResponse: toUserResponse(u),
			FileCount:    byOwner[u.Id],
		})
	}
	return res, nil
}

func (s *adminService) ListAllFiles(ctx context.Context) ([]dto.AdminFileResponse, error) {
	uow := s.ops.uowFactory.NewUnitOfWork(ctx)
	files, err := uow.FileRepository().FindAll(ctx, specification.UploadedNewestFirst{})
	if err != nil {
		return nil, err
	}
	return s.withOwners(ctx, uow, files)
}

func (s *adminService) ListUserFiles(ctx context.Context, userId uuid.UUID) (*dto.UserFilesResponse, error) {
	uow := s.ops.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	files, err := uow.FileRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.UploadedNewestFirst{},
	)
	if err != nil {
		return nil, err
	}

	return &dto.UserFilesResponse{
		User:  toUserResponse(user),
		Files: toFileResponses(files),
	}, nil
}

func (s *adminService) DeleteFile(ctx context.Context, fileId uuid.UUID) error {
	return s.ops.delete(ctx, fileId, Unscoped(), true)
}

func (s *adminService) GetLogs(ctx context.Context, req *dto.LogQueryRequest) (*dto.LogPageResponse, error) {
	page, limit := 1, 50
	if req.Page > 0 {
		page = req.Page
	}
	if req.Limit > 0 {
		limit = req.Limit
	}

	entries, total, err := s.logger.GetLogs(logger.LogQuery{
		Level:  req.Level,
		Module: req.Module,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	logs := make([]dto.LogEntryResponse, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, dto.LogEntryResponse{
			Id:        e.Id,
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Module:    e.Module,
			Message:   e.Message,
			Details:   e.Details,
		})
	}

	return &dto.LogPageResponse{
		Logs:  logs,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *adminService) withOwners(ctx context.Context, uow unitofwork.UnitOfWork, files []*entity.UploadedFile) ([]dto.AdminFileResponse, error) {
	res := make([]dto.AdminFileResponse, 0, len(files))
	if len(files) == 0 {
		return res, nil
	}

	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, f := range files {
		if !seen[f.UserId] {
			seen[f.UserId] = true
			ids = append(ids, f.UserId)
		}
	}

	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	owners := make(map[uuid.UUID]*dto.FileOwner, len(users))
	for _, u := range users {
		owners[u.Id] = &dto.FileOwner{Id: u.Id, Name: u.Name, Email: u.Email}
	}

	for _, f := range files {
		res = append(res, dto.AdminFileResponse{
			FileResponse: toFileResponse(f),
			Owner:        owners[f.UserId],
		})
	}
	return res, nil
}
