package handler

import (
	"Kudos/internal/api/dto"
	"Kudos/internal/pkg/response"
	"Kudos/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingSvc service.RatingService
}

func NewRatingHandler(ratingSvc service.RatingService) *RatingHandler {
	return &RatingHandler{ratingSvc: ratingSvc}
}

// Rate 单条评分
func (s *RatingHandler) Rate(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.RateDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.ratingSvc.Rate(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RateBatch 批量评分，整批原子
func (s *RatingHandler) RateBatch(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.RateBatchDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	results, err := s.ratingSvc.RateBatch(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]interface{}{"results": results})
}

// DeleteRating 删除自己发出的某条评分
func (s *RatingHandler) DeleteRating(c *gin.Context) {
	userID := c.GetString("user_id")

	ratingID, err := strconv.ParseUint(c.Param("rating_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.ratingSvc.DeleteRating(c.Request.Context(), userID, ratingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListSelf 自己发出的评分列表
func (s *RatingHandler) ListSelf(c *gin.Context) {
	userID := c.GetString("user_id")

	list, err := s.ratingSvc.ListOwnRatings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
