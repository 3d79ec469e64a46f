package main

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/deepgit-labs/deepgit-backend/config"
	"github.com/deepgit-labs/deepgit-backend/internal/bootstrap"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/criteria"
	"github.com/deepgit-labs/deepgit-backend/internal/edge_generation/export"
	edgesvc "github.com/deepgit-labs/deepgit-backend/internal/edge_generation/service"
	"github.com/deepgit-labs/deepgit-backend/internal/logger"
	"github.com/deepgit-labs/deepgit-backend/internal/storage/postgres"
)

// RunGenerate builds a graph for a comma-separated topic list and writes the
// GEXF export plus a stats JSON next to it. Usage:
//
//	worker generate <topic,topic,...> [outDir]
func RunGenerate(args []string) {
	if len(args) < 1 {
		log.Fatal("usage: worker generate <topics> [outDir]")
	}

	var topics []string
	for _, t := range strings.Split(args[0], ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		log.Fatal("no topics given")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if len(args) > 1 {
		cfg.Export.Dir = args[1]
	}

	if err := logger.Init(cfg.App.Environment, cfg.App.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	svc := edgesvc.New(postgres.NewRepoStore(pool), cfg.Export.Dir, logger.Get())

	res, err := svc.GenerateWithCriteria(ctx, topics, criteria.Default())
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	runID := uuid.NewString()
	statsPath := filepath.Join(cfg.Export.Dir, "stats-"+runID+".json")
	if err := export.WriteJSON(statsPath, res); err != nil {
		log.Fatalf("write stats: %v", err)
	}

	log.Printf("run %s: %d nodes, %d edges", runID, res.Stats.TotalNodes, res.Stats.TotalEdges)
	log.Printf("graph: %s", res.GEXFPath)
	log.Printf("stats: %s", statsPath)
}
