package dto

// 涨跌标记，相对 24 小时前快照排名
const (
	ChangeUp   = "up"
	ChangeDown = "down"
	ChangeSame = "same"
)

// LeaderboardEntryDTO 排行榜单行，rank 是全局名次而不是页内名次
type LeaderboardEntryDTO struct {
	UserID        string  `json:"userId"`
	Name          string  `json:"name"`
	Username      string  `json:"username"`
	AvatarURL     string  `json:"avatarUrl,omitempty"`
	AverageRating float64 `json:"averageRating"`
	RatingsCount  int64   `json:"ratingsCount"`
	Rank          int64   `json:"rank"`
	Change        string  `json:"change"`
}

type LeaderboardPageDTO struct {
	Data       []*LeaderboardEntryDTO `json:"data"`
	Pagination Pagination             `json:"pagination"`
}
