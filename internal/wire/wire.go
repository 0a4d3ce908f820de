package wire

import (
	"Kudos/internal/api"
	"Kudos/internal/api/config"
	"Kudos/internal/api/handler"
	"Kudos/internal/pkg/realtime"
	"Kudos/internal/repository"
	"Kudos/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

func BuildApplication(db *gorm.DB, rdb *redis.Client, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	ratingRepo := repository.NewRatingRepo(db)

	notifier := realtime.NewRedisNotifier(rdb)

	snapshotWindow := time.Duration(cfg.Leaderboard.SnapshotWindowHours) * time.Hour
	leaderboardService := service.NewLeaderboardService(ratingRepo, snapshotWindow)
	ratingService := service.NewRatingService(ratingRepo, userRepo, notifier, cfg.Policy)
	authService := service.NewAuthService(userRepo, rdb, cfg.Policy)

	handlers := &api.HandlersGroup{
		AuthHandler:        handler.NewAuthHandler(authService),
		LeaderboardHandler: handler.NewLeaderboardHandler(leaderboardService, cfg.Leaderboard),
		RatingHandler:      handler.NewRatingHandler(ratingService),
		UserHandler:        handler.NewUserHandler(ratingService),
		WSHandler:          handler.NewWSHandler(rdb),
	}

	router := api.SetupRouter(handlers, rdb)

	return &ApplicationContainer{
		Router: router,
		DB:     db,
		Redis:  rdb,
	}, nil
}
