package app

import (
	"context"
	"log"
	"time"

	"github.com/farukalways/freelancing-platform-create/internal/config"
	"github.com/farukalways/freelancing-platform-create/internal/database"
	"github.com/farukalways/freelancing-platform-create/internal/database/migration"
	dbpostgres "github.com/farukalways/freelancing-platform-create/internal/database/postgres"
	"github.com/farukalways/freelancing-platform-create/internal/infrastructure/cache"
	"github.com/farukalways/freelancing-platform-create/internal/reconcile"
	"github.com/farukalways/freelancing-platform-create/internal/repository"
	"github.com/farukalways/freelancing-platform-create/internal/ws"
)

type Container struct {
	Config     config.Config
	DB         database.DB
	Cache      *cache.Redis
	Hub        *ws.Hub
	Reconciler *reconcile.Reconciler
	Logger     *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	jobRepo := repository.NewPostgresJobRepository(db)

	return &Container{
		Config:     cfg,
		DB:         db,
		Cache:      cache.NewRedis(logger),
		Hub:        ws.NewHub(logger),
		Reconciler: reconcile.New(jobRepo, cfg.Reconcile.Interval, logger),
		Logger:     logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Reconciler != nil {
		c.Reconciler.Stop()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
