package cmd

import (
	"context"
	"fmt"

	appcastmember "catalog/application/castmember"
	appcategory "catalog/application/category"
	appgenre "catalog/application/genre"
	appshared "catalog/application/shared"
	appvideo "catalog/application/video"
	"catalog/config"
	"catalog/domain/castmember"
	"catalog/domain/category"
	"catalog/domain/genre"
	"catalog/domain/shared"
	"catalog/domain/video"
	"catalog/infrastructure/messaging"
	"catalog/infrastructure/persistence/memory"
	"catalog/infrastructure/persistence/relational"
	"catalog/infrastructure/storage"
	"catalog/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg      *config.Config
	broker   messaging.MessageBroker
	storage  storage.Storage
	inMemory bool
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithBroker overrides the broker created from messaging config
func (b *AppBuilder) WithBroker(broker messaging.MessageBroker) *AppBuilder {
	b.broker = broker
	return b
}

// WithStorage overrides the media storage created from storage config
func (b *AppBuilder) WithStorage(s storage.Storage) *AppBuilder {
	b.storage = s
	return b
}

// UseInMemoryPersistence skips the database and wires the in-memory repositories
func (b *AppBuilder) UseInMemoryPersistence() *AppBuilder {
	b.inMemory = true
	return b
}

type repositories struct {
	categories  category.Repository
	castMembers castmember.Repository
	genres      genre.Repository
	videos      video.Repository
	uowFactory  shared.UnitOfWorkFactory
}

// Build creates the App instance
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	app := &App{config: b.cfg}

	var repos repositories
	if b.inMemory {
		logger.Info("Using in-memory persistence")
		repos = inMemoryRepositories()
	} else {
		db, err := b.openDatabase(ctx)
		if err != nil {
			return nil, err
		}
		app.db = db
		repos = relationalRepositories(db)
	}

	broker := b.broker
	if broker == nil {
		created, err := messaging.NewBroker(b.cfg.Messaging)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create message broker: %w", err)
		}
		broker = created
	}
	app.broker = broker

	mediaStorage := b.storage
	if mediaStorage == nil {
		created, err := storage.New(ctx, b.cfg.Storage)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create media storage: %w", err)
		}
		mediaStorage = created
	}
	app.storage = mediaStorage

	app.Mediator = appshared.NewDomainEventMediator(broker)
	runner := appshared.NewApplicationService(repos.uowFactory, app.Mediator)

	app.Categories = appcategory.NewApplicationService(runner, repos.categories)
	app.CastMembers = appcastmember.NewApplicationService(runner, repos.castMembers)
	app.Genres = appgenre.NewApplicationService(runner, repos.genres, repos.categories)
	app.Videos = appvideo.NewApplicationService(runner, appvideo.Repositories{
		Videos:      repos.videos,
		Categories:  repos.categories,
		Genres:      repos.genres,
		CastMembers: repos.castMembers,
	}, mediaStorage)

	logger.Info("Application built",
		zap.String("messaging", b.cfg.Messaging.Type),
		zap.String("storage", b.cfg.Storage.Type),
		zap.Bool("in_memory", b.inMemory),
	)
	return app, nil
}

func (b *AppBuilder) openDatabase(ctx context.Context) (*gorm.DB, error) {
	dbConfig := relational.FromAppConfig(b.cfg.Database)

	db, err := dbConfig.Connect()
	if err != nil {
		return nil, err
	}
	if err := relational.Ping(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if b.cfg.Database.AutoMigrate || b.cfg.IsDevelopment() {
		if err := relational.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
	}
	return db, nil
}

func relationalRepositories(db *gorm.DB) repositories {
	return repositories{
		categories:  relational.NewCategoryRepository(db),
		castMembers: relational.NewCastMemberRepository(db),
		genres:      relational.NewGenreRepository(db),
		videos:      relational.NewVideoRepository(db),
		uowFactory:  relational.NewUnitOfWorkFactory(db),
	}
}

func inMemoryRepositories() repositories {
	return repositories{
		categories:  memory.NewCategoryRepository(),
		castMembers: memory.NewCastMemberRepository(),
		genres:      memory.NewGenreRepository(),
		videos:      memory.NewVideoRepository(),
		uowFactory:  memory.NewUnitOfWorkFactory(),
	}
}
