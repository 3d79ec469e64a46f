package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deepgit-labs/deepgit-backend/config"
	"github.com/deepgit-labs/deepgit-backend/internal/bootstrap"
	"github.com/deepgit-labs/deepgit-backend/internal/logger"
	cronjob "github.com/deepgit-labs/deepgit-backend/internal/maintenance/cron"
	"github.com/deepgit-labs/deepgit-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.App.Environment, cfg.App.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal("sql connection failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	scheduler := cronjob.NewScheduler(cfg.Export.Dir, cfg.Export.RetentionDays, log)
	scheduler.Start()
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "deepgit-backend",
		Version:     cfg.App.Version,
		Pool:        pool,
		SQL:         sqlDB,
		Redis:       rdb,
		AI:          cfg.AI,
		ExportDir:   cfg.Export.Dir,
		TopicTTL:    time.Duration(cfg.Cache.TopicTTLHours) * time.Hour,
		Log:         log,
	})

	log.Info("listening", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
