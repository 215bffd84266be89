package service

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/model"
	"excel-analytics-be/internal/pkg/eventbus"
	"excel-analytics-be/internal/pkg/logger"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/pkg/database"
	pkgEvents "excel-analytics-be/pkg/events"
	"excel-analytics-be/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type recordedEvents struct {
	mu    sync.Mutex
	types []string
}

func (r *recordedEvents) Publish(_ context.Context, e pkgEvents.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, e.EventType())
	return nil
}

func (r *recordedEvents) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}

// failingReads serves writes and lookups from the wrapped store but fails
// every Read with err.
type failingReads struct {
	*storage.LocalStorage
	err error
}

func (f failingReads) Read(context.Context, string) ([]byte, error) {
	return nil, f.err
}

type testEnv struct {
	db      *gorm.DB
	store   *storage.LocalStorage
	logger  *logger.ZapLogger
	events  *recordedEvents
	factory unitofwork.RepositoryFactory
	files   IFileService
	admin   IAdminService
	users   IUserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	db, err := database.NewQuietGormDB(database.DriverSQLite, filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	store, err := storage.NewLocalStorage(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	log := logger.NewIsolatedLogger(filepath.Join(dir, "app.log"))
	recorded := &recordedEvents{}
	publisher := eventbus.NewNatsPublisher(recorded, log)
	factory := unitofwork.NewRepositoryFactory(db)

	return &testEnv{
		db:      db,
		store:   store,
		logger:  log,
		events:  recorded,
		factory: factory,
		files:   NewFileService(factory, store, log, publisher, 1<<20),
		admin:   NewAdminService(factory, store, log, publisher),
		users:   NewUserService(factory),
	}
}

func (e *testEnv) createUser(t *testing.T, name string, role entity.UserRole) entity.Identity {
	t.Helper()
	user := &entity.User{
		Name:      name,
		Email:     name + "@example.com",
		Role:      role,
		CreatedAt: time.Now(),
	}
	require.NoError(t, e.factory.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), user))
	return entity.Identity{UserId: user.Id, Role: role}
}

// workbook builds an xlsx with header A,B,C and n data rows where B = i*10.
func workbook(t *testing.T, n int) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"A", "B", "C"}))
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &[]any{fmt.Sprintf("row-%d", i), i * 10, "c"}))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	return typedFileHeader(t, name, "application/octet-stream", data)
}

// typedFileHeader builds the part with an explicit Content-Type; an empty
// contentType leaves the header off.
func typedFileHeader(t *testing.T, name, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="excelFile"; filename="%s"`, name))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["excelFile"][0]
}

func (e *testEnv) upload(t *testing.T, owner entity.Identity, name string, data []byte) uuid.UUID {
	t.Helper()
	res, err := e.files.Upload(context.Background(), owner, fileHeader(t, name, data))
	require.NoError(t, err)
	return res.FileId
}
