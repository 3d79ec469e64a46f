package cronjob

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler prunes aged graph export files so the exports directory does not
// grow without bound.
type Scheduler struct {
	exportDir string
	retention time.Duration
	log       *zap.Logger
	cron      *cron.Cron
}

func NewScheduler(exportDir string, retentionDays int, log *zap.Logger) *Scheduler {
	return &Scheduler{
		exportDir: exportDir,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		log:       log,
	}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// nightly at 12:00 AM
	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.RunCleanup()
	})
	if err != nil {
		s.log.Error("failed to create cron job", zap.Error(err))
		return
	}

	s.log.Info("cron scheduler started (export cleanup nightly at 12:00AM)")
	c.Start()
	s.cron = c
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunCleanup removes export files older than the retention window and
// returns how many were deleted.
func (s *Scheduler) RunCleanup() int {
	if s.retention <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-s.retention)

	entries, err := os.ReadDir(s.exportDir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("export cleanup: read dir", zap.Error(err))
		}
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".gexf" && ext != ".gz" && ext != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.exportDir, name)); err != nil {
			s.log.Warn("export cleanup: remove", zap.String("file", name), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.Info("export cleanup finished", zap.Int("removed", removed))
	}
	return removed
}
