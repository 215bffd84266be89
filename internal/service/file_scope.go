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

// Scope restricts which files an operation may touch. Owner routes and
// admin routes run the same queries with different scopes.
type Scope struct {
	specs []specification.Specification
}

func OwnerScope(userId uuid.UUID) Scope {
	return Scope{specs: []specification.Specification{specification.UserOwnedBy{UserID: userId}}}
}

func Unscoped() Scope {
	return Scope{}
}

func (s Scope) with(specs ...specification.Specification) []specification.Specification {
	return append(specs, s.specs...)
}

// fileOps holds the resolve and delete steps shared by the owner and admin
// services.
type fileOps struct {
	uowFactory unitofwork.RepositoryFactory
	storage    storage.Storage
	logger     logger.ILogger
	events     eventbus.Publisher
}

// resolve loads a file visible in scope. Absent and foreign files are both
// reported as not found.
func (o *fileOps) resolve(ctx context.Context, fileId uuid.UUID, scope Scope) (*entity.UploadedFile, error) {
	uow := o.uowFactory.NewUnitOfWork(ctx)
	file, err := uow.FileRepository().FindOne(ctx, scope.with(specification.ByID{ID: fileId})...)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.NotFound("File not found")
	}
	return file, nil
}

// delete removes the stored bytes on a best-effort basis, then the file
// record and its history in one transaction.
func (o *fileOps) delete(ctx context.Context, fileId uuid.UUID, scope Scope, byAdmin bool) error {
	file, err := o.resolve(ctx, fileId, scope)
	if err != nil {
		return err
	}

	o.discard(ctx, file.Id, file.Path)

	err = o.uowFactory.NewUnitOfWork(ctx).Do(ctx, func(tx unitofwork.UnitOfWork) error {
		if err := tx.AnalysisRepository().DeleteByFile(ctx, file.Id); err != nil {
			return err
		}
		return tx.FileRepository().Delete(ctx, file.Id)
	})
	if err != nil {
		return err
	}

	o.logger.Info("FILE", "File deleted", map[string]interface{}{
		"file_id":  file.Id,
		"user_id":  file.UserId,
		"by_admin": byAdmin,
	})
	o.events.PublishFileDeleted(ctx, file.Id, file.UserId, byAdmin)
	return nil
}

// discard never fails: missing bytes and remove errors are only logged.
func (o *fileOps) discard(ctx context.Context, fileId uuid.UUID, location string) {
	exists, err := o.storage.Exists(ctx, location)
	if err != nil {
		o.logger.Warn("FILE", "Could not check stored file", map[string]interface{}{
			"file_id": fileId,
			"error":   err.Error(),
		})
		return
	}
	if !exists {
		o.logger.Warn("FILE", "Stored file already missing", map[string]interface{}{"file_id": fileId})
		return
	}
	if err := o.storage.Remove(ctx, location); err != nil {
		o.logger.Warn("FILE", "Failed to remove stored file", map[string]interface{}{
			"file_id": fileId,
			"error":   err.Error(),
		})
	}
}

func toFileResponse(f *entity.UploadedFile) dto.FileResponse {
	return dto.FileResponse{
		Id:            f.Id,
		UserId:        f.UserId,
		OriginalName:  f.OriginalName,
		Filename:      f.Filename,
		Size:          f.Size,
		MimeType:      f.MimeType,
		HistoryLength: f.AnalysisCount,
		UploadedAt:    f.UploadedAt,
	}
}

func toFileResponses(files []*entity.UploadedFile) []dto.FileResponse {
	res := make([]dto.FileResponse, 0, len(files))
	for _, f := range files {
		res = append(res, toFileResponse(f))
	}
	return res
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}
