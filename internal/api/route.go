package api

import (
	"Kudos/internal/api/middleware"
	"Kudos/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func SetupRouter(group *HandlersGroup, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", group.AuthHandler.Login)

			logoutGroup := authGroup.Group("")
			logoutGroup.Use(middleware.AuthMiddleware(rdb))
			{
				logoutGroup.POST("/logout", group.AuthHandler.Logout)
			}
		}

		// 排行榜和用户聚合无需登录即可查看，带了合法 Token 则注入身份
		viewGroup := apiGroup.Group("")
		viewGroup.Use(middleware.AuthOptionalMiddleware())
		{
			viewGroup.GET("/leaderboard", group.LeaderboardHandler.List)
			viewGroup.GET("/users/:user_id/aggregate", group.UserHandler.GetUserAggregate)
		}

		ratingGroup := apiGroup.Group("/ratings")
		ratingGroup.Use(middleware.AuthMiddleware(rdb))
		{
			ratingGroup.POST("", group.RatingHandler.Rate)
			ratingGroup.POST("/batch", group.RatingHandler.RateBatch)
			ratingGroup.GET("/self", group.RatingHandler.ListSelf)
			ratingGroup.DELETE("/:rating_id", group.RatingHandler.DeleteRating)
		}

		realtimeGroup := apiGroup.Group("/realtime")
		{
			realtimeGroup.GET("/ws", group.WSHandler.Connect)
		}
	}

	return r
}
