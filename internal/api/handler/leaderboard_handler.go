package handler

import (
	"Kudos/internal/api/config"
	"Kudos/internal/pkg/response"
	"Kudos/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardSvc  service.LeaderboardService
	defaultPageSize int
	maxPageSize     int
}

func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService, cfg config.LeaderboardConfig) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardSvc:  leaderboardSvc,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}
}

// List 排行榜，无需登录
func (s *LeaderboardHandler) List(c *gin.Context) {
	search := c.Query("search")
	page, pageSize := s.getPagination(c)

	pageData, err := s.leaderboardSvc.List(c.Request.Context(), search, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pageData)
}

func (s *LeaderboardHandler) getPagination(c *gin.Context) (int, int) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("page_size", strconv.Itoa(s.defaultPageSize))

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	return page, pageSize
}
