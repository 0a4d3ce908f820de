package api

import "Kudos/internal/api/handler"

type HandlersGroup struct {
	AuthHandler        *handler.AuthHandler
	LeaderboardHandler *handler.LeaderboardHandler
	RatingHandler      *handler.RatingHandler
	UserHandler        *handler.UserHandler
	WSHandler          *handler.WSHandler
}
