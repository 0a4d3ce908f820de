package dto

import "time"

// RateDTO 单条评分请求，校验顺序由 service 层保证
type RateDTO struct {
	RateeID string `json:"rateeId"`
	Value   int    `json:"value"`
}

// RateBatchDTO 批量评分，整批校验通过才落库
type RateBatchDTO struct {
	Ratings []RateDTO `json:"ratings" binding:"required"`
}

// RatingResultDTO 评分后的被评用户聚合状态，同时作为 rating-updated 事件载荷
type RatingResultDTO struct {
	UserID        string  `json:"userId"`
	AverageRating float64 `json:"averageRating"`
	RatingsCount  int64   `json:"ratingsCount"`
	Rank          int64   `json:"rank"`
}

// RatingDTO 评分记录
type RatingDTO struct {
	ID        uint64    `json:"id"`
	RateeID   string    `json:"rateeId"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserAggregateDTO 用户主页聚合，ratingDistribution[0] 为五星数
type UserAggregateDTO struct {
	UserID             string   `json:"userId"`
	AverageRating      float64  `json:"averageRating"`
	TotalRatings       int64    `json:"totalRatings"`
	RatingDistribution [5]int64 `json:"ratingDistribution"`
}
