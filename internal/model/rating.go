package model

import (
	"time"
)

// Rating 评分边，(rater_id, ratee_id) 唯一，重复评分走 upsert 覆盖
type Rating struct {
	ID        uint64 `gorm:"primaryKey"`
	RaterID   string `gorm:"type:varchar(64);uniqueIndex:idx_rater_ratee,priority:1;index:idx_rater"`
	RateeID   string `gorm:"type:varchar(64);uniqueIndex:idx_rater_ratee,priority:2;index:idx_ratee"`
	Value     int    `gorm:"type:tinyint;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Rating) TableName() string {
	return "ratings"
}
