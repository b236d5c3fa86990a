package api

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Llayon/fantasy-autobattler-sub008/internal/api/handlers"
	"github.com/Llayon/fantasy-autobattler-sub008/internal/api/middleware"
	"github.com/Llayon/fantasy-autobattler-sub008/internal/config"
	"github.com/Llayon/fantasy-autobattler-sub008/internal/repository"
	"github.com/Llayon/fantasy-autobattler-sub008/internal/service"
	"github.com/Llayon/fantasy-autobattler-sub008/internal/websocket"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/battle"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/database"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/distributed"
	"github.com/Llayon/fantasy-autobattler-sub008/pkg/logger"
)

// entryClaimTTL bounds how long a crashed matcher can hold a pair.
const entryClaimTTL = 15 * time.Second

// SetupRouter wires repositories, services and handlers and returns the
// engine together with the started janitor so the caller can stop it on
// shutdown. redisClient may be nil; entry claiming is then disabled and
// the store's commit-time check carries concurrency control alone.
func SetupRouter(cfg *config.Config, db *database.DB, redisClient *redis.Client) (*gin.Engine, *service.Janitor) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	queueRepo := repository.NewQueueRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	battleClient := battle.NewClient(cfg.BattleServiceURL)

	wsHub := websocket.NewHub()
	go wsHub.Run()

	matchmakingService := service.NewMatchmakingService(
		queueRepo,
		playerRepo,
		teamRepo,
		battleClient,
		cfg,
	)
	matchmakingService.SetNotifier(wsHub)

	if redisClient != nil {
		matchmakingService.SetClaimer(&redisClaimer{
			claims: distributed.NewClaimManager(redisClient, entryClaimTTL),
		})
		logger.Info("Entry claiming enabled", "ttl", entryClaimTTL)
	}

	janitor := service.NewJanitor(matchmakingService, cfg.JanitorInterval)
	janitor.Start()

	queueHandler := handlers.NewQueueHandler(matchmakingService)
	wsHandler := handlers.NewWebSocketHandler(wsHub)

	router.GET("/health", handlers.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/ws", middleware.Auth(cfg), wsHandler.HandleWebSocket)

		queue := v1.Group("/queue")
		{
			queue.GET("/stats", queueHandler.GetStats)

			authed := queue.Group("")
			authed.Use(middleware.Auth(cfg))
			{
				authed.POST("/join", middleware.QueueJoinRateLimit(), queueHandler.JoinQueue)
				authed.POST("/leave", queueHandler.LeaveQueue)
				authed.POST("/match", middleware.MatchSearchRateLimit(), queueHandler.FindMatch)
				authed.GET("/entry", queueHandler.GetEntry)
				authed.POST("/cleanup", queueHandler.Cleanup)
			}
		}
	}

	return router, janitor
}

// redisClaimer adapts the redis claim manager to the service interface.
// A contended claim is reported as ok=false, not as an error.
type redisClaimer struct {
	claims *distributed.ClaimManager
}

func (r *redisClaimer) ClaimEntries(ctx context.Context, entryIDs ...string) (func(), bool, error) {
	claim, err := r.claims.ClaimEntries(ctx, entryIDs...)
	if err != nil {
		if errors.Is(err, distributed.ErrAlreadyClaimed) {
			return nil, false, nil
		}
		return nil, false, err
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := claim.Release(releaseCtx); err != nil && !errors.Is(err, distributed.ErrClaimNotHeld) {
			logger.Warn("Failed to release entry claim", "error", err)
		}
	}
	return release, true, nil
}
