package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap"
	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/db"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/storage"
)

type App struct {
	Cfg                  *config.Config
	DB                   *sqlx.DB
	AuthService          *service.AuthService
	UserService          *service.UserService
	PictureService       *service.PictureService
	MessageService       *service.MessageService
	NotificationService  *service.NotificationService
	CollaborationService *service.CollaborationService
	ReportService        *service.ReportService
	PageService          *service.PageService
	EmailService         *service.EmailService
}

// New connects to the database, applies migrations and wires the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	database, err := db.Init(cfg.DBDriver, dsn, db.Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pictureStorage, err := storage.New(ctx, cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	content, err := contentFS(cfg.ContentPath)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	return Wire(cfg, database, pictureStorage, content), nil
}

// Wire builds the services over an open, migrated database. Storage may be nil.
func Wire(cfg *config.Config, database *sqlx.DB, pictureStorage storage.Storage, content fs.FS) *App {
	userRepository := repository.NewUserRepository(database)
	messageRepository := repository.NewMessageRepository(database)
	notificationRepository := repository.NewNotificationRepository(database)
	projectRequestRepository := repository.NewProjectRequestRepository(database)
	reportRepository := repository.NewReportRepository(database)

	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	pictureService := service.NewPictureService(pictureStorage)

	return &App{
		Cfg: cfg,
		DB:  database,
		AuthService: service.NewAuthService(
			database,
			userRepository,
			notificationRepository,
			emailService,
			cfg.JWTSecret,
			cfg.IsProduction(),
			cfg.JWTExpiry,
		),
		UserService:    service.NewUserService(userRepository, pictureService),
		PictureService: pictureService,
		MessageService: service.NewMessageService(
			database,
			userRepository,
			messageRepository,
			notificationRepository,
			emailService,
		),
		NotificationService:  service.NewNotificationService(database, notificationRepository),
		CollaborationService: service.NewCollaborationService(projectRequestRepository),
		ReportService:        service.NewReportService(reportRepository),
		PageService:          service.NewPageService(content),
		EmailService:         emailService,
	}
}

// DSN returns DB_CONNECTION, or builds one from the DB_HOST style settings
// for the server drivers.
func DSN(cfg *config.Config) (string, error) {
	if cfg.DBConnection != "" {
		return cfg.DBConnection, nil
	}
	dsn, err := db.DSN(cfg.DBDriver, db.Credentials{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	})
	if err != nil {
		return "", fmt.Errorf("no DB_CONNECTION set: %w", err)
	}
	return dsn, nil
}

// contentFS serves pages from disk when CONTENT_PATH is set, otherwise from
// the embedded copy.
func contentFS(path string) (fs.FS, error) {
	if path != "" {
		return os.DirFS(path), nil
	}
	sub, err := fs.Sub(skillswap.ContentFS, "content")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded content: %w", err)
	}
	return sub, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
