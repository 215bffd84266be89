package service

import (
	"context"

	"excel-analytics-be/internal/dto"
	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/pkg/apperror"
	"excel-analytics-be/internal/repository/specification"
	"excel-analytics-be/internal/repository/unitofwork"
)

type IUserService interface {
	Dashboard(ctx context.Context, identity entity.Identity) (*dto.DashboardResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) Dashboard(ctx context.Context, identity entity.Identity) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: identity.UserId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	owned := specification.UserOwnedBy{UserID: identity.UserId}
	totalFiles, err := uow.FileRepository().Count(ctx, owned)
	if err != nil {
		return nil, err
	}
	totalAnalyses, err := uow.AnalysisRepository().Count(ctx, specification.AnalysisOfOwner{UserID: identity.UserId})
	if err != nil {
		return nil, err
	}

	recent, err := uow.FileRepository().FindAll(ctx,
		owned,
		specification.UploadedNewestFirst{},
		specification.Pagination{Limit: recentLimit},
	)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalFiles:    totalFiles,
			TotalAnalyses: totalAnalyses,
			JoinedDate:    user.CreatedAt,
		},
		RecentFiles: toFileResponses(recent),
	}, nil
}
