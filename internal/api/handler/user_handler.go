package handler

import (
	"Kudos/internal/pkg/response"
	"Kudos/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	ratingSvc service.RatingService
}

func NewUserHandler(ratingSvc service.RatingService) *UserHandler {
	return &UserHandler{ratingSvc: ratingSvc}
}

// GetUserAggregate 用户主页聚合：平均分、总评分数、星级分布
func (s *UserHandler) GetUserAggregate(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	aggregate, err := s.ratingSvc.GetUserAggregate(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, aggregate)
}
