package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/registry"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// app holds what every command needs. close runs the registered closers in
// reverse order.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	clock timezone.Clock

	closers []func()
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:   cfg,
		log:   log,
		db:    db,
		clock: timezone.SystemClock(cfg.Location()),
	}
	a.onClose(func() { _ = log.Sync() })
	a.onClose(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return a, nil
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// registry opens the booked-slot store selected by REGISTRY_BACKEND.
func (a *app) registry(ctx context.Context) (schedule.Store, error) {
	switch a.cfg.RegistryBackend {
	case config.RegistryMongo:
		mdb, err := dbpkg.NewMongo(ctx, a.cfg)
		if err != nil {
			return nil, err
		}
		a.onClose(func() { _ = mdb.Client().Disconnect(context.Background()) })
		return registry.NewMongoStore(mdb), nil

	case config.RegistryPostgres:
		return registry.NewGormStore(a.db), nil
	}
	return nil, fmt.Errorf("unknown registry backend %q", a.cfg.RegistryBackend)
}

func (a *app) queueRedis() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisQueueDB,
	}
}
