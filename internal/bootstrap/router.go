package bootstrap

import (
	"database/sql"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/deepgit-labs/deepgit-backend/config"
	httpapi "github.com/deepgit-labs/deepgit-backend/internal/api/http"
	"github.com/deepgit-labs/deepgit-backend/internal/api/http/routes"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Pool        *pgxpool.Pool
	SQL         *sql.DB
	Redis       *redis.Client
	AI          config.AIConfig
	ExportDir   string
	TopicTTL    time.Duration
	Log         *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Pool, dep.Redis)
	healthHandler.RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		Pool:      dep.Pool,
		SQL:       dep.SQL,
		Redis:     dep.Redis,
		AI:        dep.AI,
		ExportDir: dep.ExportDir,
		TopicTTL:  dep.TopicTTL,
		Log:       dep.Log,
	})

	return r
}
