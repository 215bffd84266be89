package unitofwork

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/model"
	"excel-analytics-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(t *testing.T) RepositoryFactory {
	t.Helper()
	db, err := database.NewQuietGormDB(database.DriverSQLite, filepath.Join(t.TempDir(), "uow.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return NewRepositoryFactory(db)
}

func newFile(owner uuid.UUID) *entity.UploadedFile {
	return &entity.UploadedFile{
		UserId:       owner,
		OriginalName: "sales.xlsx",
		Filename:     uuid.NewString() + ".xlsx",
		Path:         "sales.xlsx",
		Size:         1,
		MimeType:     "text/csv",
		UploadedAt:   time.Now(),
	}
}

func TestDoCommits(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	owner := uuid.New()

	err := factory.NewUnitOfWork(ctx).Do(ctx, func(tx UnitOfWork) error {
		return tx.FileRepository().Create(ctx, newFile(owner))
	})
	require.NoError(t, err)

	count, err := factory.NewUnitOfWork(ctx).FileRepository().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDoRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	boom := errors.New("boom")

	err := factory.NewUnitOfWork(ctx).Do(ctx, func(tx UnitOfWork) error {
		require.NoError(t, tx.FileRepository().Create(ctx, newFile(uuid.New())))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := factory.NewUnitOfWork(ctx).FileRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDoRollsBackOnPanic(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)

	assert.Panics(t, func() {
		_ = factory.NewUnitOfWork(ctx).Do(ctx, func(tx UnitOfWork) error {
			require.NoError(t, tx.FileRepository().Create(ctx, newFile(uuid.New())))
			panic("boom")
		})
	})

	count, err := factory.NewUnitOfWork(ctx).FileRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTransactionState(t *testing.T) {
	ctx := context.Background()
	uow := newFactory(t).NewUnitOfWork(ctx)

	assert.ErrorIs(t, uow.Commit(), ErrTxInactive)
	assert.NoError(t, uow.Rollback())

	require.NoError(t, uow.Begin(ctx))
	assert.ErrorIs(t, uow.Begin(ctx), ErrTxActive)
	require.NoError(t, uow.Commit())
	assert.NoError(t, uow.Rollback(), "rollback after commit is a no-op")
}
