package service

import (
	"Kudos/internal/api/dto"
	"Kudos/internal/repository"
	"context"
	"time"
)

type LeaderboardService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.LeaderboardPageDTO, error)
	RankOf(ctx context.Context, avgRating float64, ratingsCount int64) (int64, error)
}

type LeaderboardServiceImpl struct {
	ratingRepo     repository.RatingRepo
	snapshotWindow time.Duration
}

func NewLeaderboardService(ratingRepo repository.RatingRepo, snapshotWindow time.Duration) LeaderboardService {
	return &LeaderboardServiceImpl{
		ratingRepo:     ratingRepo,
		snapshotWindow: snapshotWindow,
	}
}

// List 排行榜分页查询。rank 按全局位置计算（offset + 页内序号 + 1），
// 翻页时名次连续；涨跌标记对比的是一份不分页、不过滤的快照排名。
func (s *LeaderboardServiceImpl) List(ctx context.Context, search string, page, pageSize int) (*dto.LeaderboardPageDTO, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	rows, err := s.ratingRepo.LeaderboardPage(ctx, search, offset, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.ratingRepo.CountUsers(ctx, search)
	if err != nil {
		return nil, err
	}

	previousRanks, err := s.previousRanks(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.LeaderboardEntryDTO, 0, len(rows))
	for i, row := range rows {
		rank := int64(offset + i + 1)

		// 快照里没有的用户（比如新注册）视作名次不变
		previousRank, ok := previousRanks[row.UserID]
		if !ok {
			previousRank = rank
		}

		change := dto.ChangeSame
		if previousRank < rank {
			change = dto.ChangeDown
		} else if previousRank > rank {
			change = dto.ChangeUp
		}

		username := usernameFromEmail(row.Email)
		entries = append(entries, &dto.LeaderboardEntryDTO{
			UserID:        row.UserID,
			Name:          row.Name,
			Username:      username,
			AvatarURL:     row.AvatarURL,
			AverageRating: Round1(row.AvgRating),
			RatingsCount:  row.RatingsCount,
			Rank:          rank,
			Change:        change,
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.LeaderboardPageDTO{
		Data: entries,
		Pagination: dto.Pagination{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}, nil
}

// RankOf 名次 = 严格排在前面的用户数 + 1
func (s *LeaderboardServiceImpl) RankOf(ctx context.Context, avgRating float64, ratingsCount int64) (int64, error) {
	outranked, err := s.ratingRepo.CountOutranking(ctx, avgRating, ratingsCount)
	if err != nil {
		return 0, err
	}
	return outranked + 1, nil
}

// previousRanks 用窗口之前创建的评分现算一份完整排名。
// 没有持久化的历史快照表，这是一个按需重算的近似。
func (s *LeaderboardServiceImpl) previousRanks(ctx context.Context) (map[string]int64, error) {
	cutoff := time.Now().Add(-s.snapshotWindow)
	rows, err := s.ratingRepo.SnapshotRanking(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	ranks := make(map[string]int64, len(rows))
	for i, row := range rows {
		ranks[row.UserID] = int64(i + 1)
	}
	return ranks, nil
}

func usernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
