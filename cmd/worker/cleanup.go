package main

import (
	"log"

	"github.com/deepgit-labs/deepgit-backend/config"
	"github.com/deepgit-labs/deepgit-backend/internal/logger"
	cronjob "github.com/deepgit-labs/deepgit-backend/internal/maintenance/cron"
)

// RunCleanup prunes aged export files once and exits. Usage:
//
//	worker cleanup [dir]
func RunCleanup(args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if len(args) > 0 {
		cfg.Export.Dir = args[0]
	}

	if err := logger.Init(cfg.App.Environment, cfg.App.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	s := cronjob.NewScheduler(cfg.Export.Dir, cfg.Export.RetentionDays, logger.Get())
	removed := s.RunCleanup()
	log.Printf("removed %d aged export file(s) from %s", removed, cfg.Export.Dir)
}
