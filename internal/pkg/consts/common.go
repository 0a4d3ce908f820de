package consts

// 实时推送：一个固定频道、一种事件
const (
	LeaderboardChannel = "leaderboard"
	EventRatingUpdated = "rating-updated"
)
