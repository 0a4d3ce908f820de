package model

// LeaderboardRow 排行榜聚合查询的投影，不落库
type LeaderboardRow struct {
	UserID       string  `gorm:"column:user_id"`
	Name         string  `gorm:"column:name"`
	Email        string  `gorm:"column:email"`
	AvatarURL    string  `gorm:"column:avatar_url"`
	AvgRating    float64 `gorm:"column:avg_rating"`
	RatingsCount int64   `gorm:"column:ratings_count"`
}
