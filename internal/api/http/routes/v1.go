package routes

import (
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/deepgit-labs/deepgit-backend/config"
	"github.com/deepgit-labs/deepgit-backend/internal/ai_processing"
	"github.com/deepgit-labs/deepgit-backend/internal/api/http/middleware"
	edgehttp "github.com/deepgit-labs/deepgit-backend/internal/edge_generation/http"
	edgesvc "github.com/deepgit-labs/deepgit-backend/internal/edge_generation/service"
	"github.com/deepgit-labs/deepgit-backend/internal/storage/postgres"
	"github.com/deepgit-labs/deepgit-backend/internal/topic_discovery"
)

type V1Deps struct {
	Pool      *pgxpool.Pool
	SQL       *sql.DB
	Redis     *redis.Client
	AI        config.AIConfig
	ExportDir string
	TopicTTL  time.Duration
	Log       *zap.Logger
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(middleware.RequestID(dep.Log))

	store := postgres.NewRepoStore(dep.Pool)
	edgeService := edgesvc.New(store, dep.ExportDir, dep.Log)
	edgehttp.NewHandler(edgeService, dep.Log).Register(api)

	topicService := topic_discovery.NewService(
		topic_discovery.NewRepository(dep.SQL),
		topic_discovery.NewCache(dep.Redis, dep.TopicTTL),
		dep.Log,
	)
	topic_discovery.NewHandler(topicService, dep.Log).Register(api)

	aiService := ai_processing.NewService(
		ai_processing.NewClient(dep.AI.BaseURL),
		dep.AI.RateLimitPerHour,
		dep.Log,
	)
	ai_processing.NewHandler(aiService, dep.Log).Register(api)
}
