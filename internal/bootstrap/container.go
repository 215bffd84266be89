package bootstrap

import (
	"context"
	"fmt"
	"log"

	"excel-analytics-be/internal/config"
	"excel-analytics-be/internal/controller"
	"excel-analytics-be/internal/pkg/eventbus"
	"excel-analytics-be/internal/pkg/logger"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/internal/service"
	pktNats "excel-analytics-be/pkg/nats"
	"excel-analytics-be/pkg/storage"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	FileController  controller.IFileController
	UserController  controller.IUserController
	AdminController controller.IAdminController

	Logger logger.ILogger

	closers []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, sysLogger.Sync)

	// 2. Infrastructure
	store, err := newStorage(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if gcsStore, ok := store.(*storage.GCSStorage); ok {
		c.closers = append(c.closers, gcsStore.Close)
	}

	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		} else {
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}
	events := eventbus.NewNatsPublisher(eventbus.FromNats(natsPub), sysLogger)

	// 3. Services
	fileService := service.NewFileService(uowFactory, store, sysLogger, events, int64(cfg.App.UploadMaxBytes))
	adminService := service.NewAdminService(uowFactory, store, sysLogger, events)
	userService := service.NewUserService(uowFactory)

	// 4. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)
	c.FileController = controller.NewFileController(fileService, auth)
	c.UserController = controller.NewUserController(userService, auth)
	c.AdminController = controller.NewAdminController(adminService, auth)

	return c, nil
}

// Close releases infrastructure in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
}

func newStorage(cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case "local", "":
		local, err := storage.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET_NAME is required when STORAGE_DRIVER=gcs")
		}
		gcs, err := storage.NewGCSStorage(context.Background(), cfg.GCSBucket, cfg.GCSPrefix, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return gcs, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
