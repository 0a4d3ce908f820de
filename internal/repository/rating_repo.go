package repository

import (
	"Kudos/internal/model"
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepo 评分存储的查询端口，聚合与排名一律现算，不维护增量计数
type RatingRepo interface {
	Upsert(ctx context.Context, rating *model.Rating) error
	UpsertBatch(ctx context.Context, ratings []*model.Rating) error
	GetByID(ctx context.Context, id uint64) (*model.Rating, error)
	GetByPair(ctx context.Context, raterID, rateeID string) (*model.Rating, error)
	ListByRater(ctx context.Context, raterID string) ([]*model.Rating, error)
	Delete(ctx context.Context, id uint64) error
	Aggregate(ctx context.Context, userID string, before *time.Time) (float64, int64, error)
	Distribution(ctx context.Context, userID string) ([5]int64, error)
	CountOutranking(ctx context.Context, avgRating float64, ratingsCount int64) (int64, error)
	LeaderboardPage(ctx context.Context, search string, offset, limit int) ([]*model.LeaderboardRow, error)
	CountUsers(ctx context.Context, search string) (int64, error)
	SnapshotRanking(ctx context.Context, before time.Time) ([]*model.LeaderboardRow, error)
}

type RatingRepoImpl struct {
	db *gorm.DB
}

func NewRatingRepo(db *gorm.DB) RatingRepo {
	return &RatingRepoImpl{db: db}
}

// Upsert 以 (rater_id, ratee_id) 为键的原子写入，已存在则覆盖 value
func (s *RatingRepoImpl) Upsert(ctx context.Context, rating *model.Rating) error {
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rater_id"}, {Name: "ratee_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating)
	if result.Error != nil {
		return errors.Wrap(result.Error, "upsert rating")
	}
	return nil
}

// UpsertBatch 批量写入在单事务内完成，任一失败全部回滚
func (s *RatingRepoImpl) UpsertBatch(ctx context.Context, ratings []*model.Rating) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rating := range ratings {
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "rater_id"}, {Name: "ratee_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(rating)
			if result.Error != nil {
				return errors.Wrap(result.Error, "upsert rating batch")
			}
		}
		return nil
	})
}

func (s *RatingRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Rating, error) {
	rating := &model.Rating{}
	result := s.db.WithContext(ctx).First(rating, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "get rating by id")
	}
	return rating, nil
}

func (s *RatingRepoImpl) GetByPair(ctx context.Context, raterID, rateeID string) (*model.Rating, error) {
	rating := &model.Rating{}
	result := s.db.WithContext(ctx).
		Where("rater_id = ? AND ratee_id = ?", raterID, rateeID).
		First(rating)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "get rating by pair")
	}
	return rating, nil
}

func (s *RatingRepoImpl) ListByRater(ctx context.Context, raterID string) ([]*model.Rating, error) {
	ratings := make([]*model.Rating, 0)
	result := s.db.WithContext(ctx).
		Where("rater_id = ?", raterID).
		Order("updated_at DESC").
		Find(&ratings)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "list ratings by rater")
	}
	return ratings, nil
}

func (s *RatingRepoImpl) Delete(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&model.Rating{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete rating")
	}
	return nil
}

// Aggregate 现算某用户的平均分与评分数，before 非空时仅统计该时刻之前创建的评分
func (s *RatingRepoImpl) Aggregate(ctx context.Context, userID string, before *time.Time) (float64, int64, error) {
	var row struct {
		AvgRating    float64 `gorm:"column:avg_rating"`
		RatingsCount int64   `gorm:"column:ratings_count"`
	}

	query := "SELECT COALESCE(AVG(value), 0) AS avg_rating, COUNT(id) AS ratings_count FROM ratings WHERE ratee_id = ?"
	args := []interface{}{userID}
	if before != nil {
		query += " AND created_at < ?"
		args = append(args, *before)
	}

	result := s.db.WithContext(ctx).Raw(query, args...).Scan(&row)
	if result.Error != nil {
		return 0, 0, errors.Wrap(result.Error, "aggregate ratings")
	}
	return row.AvgRating, row.RatingsCount, nil
}

// Distribution 各星级计数，下标 0 为五星、4 为一星
func (s *RatingRepoImpl) Distribution(ctx context.Context, userID string) ([5]int64, error) {
	var distribution [5]int64
	var rows []struct {
		Value int   `gorm:"column:value"`
		Cnt   int64 `gorm:"column:cnt"`
	}

	result := s.db.WithContext(ctx).
		Raw("SELECT value, COUNT(*) AS cnt FROM ratings WHERE ratee_id = ? GROUP BY value", userID).
		Scan(&rows)
	if result.Error != nil {
		return distribution, errors.Wrap(result.Error, "rating distribution")
	}

	for _, row := range rows {
		if row.Value >= 1 && row.Value <= 5 {
			distribution[5-row.Value] += row.Cnt
		}
	}
	return distribution, nil
}

// CountOutranking 统计严格排在 (avgRating, ratingsCount) 之前的用户数，排名 = 该值 + 1
func (s *RatingRepoImpl) CountOutranking(ctx context.Context, avgRating float64, ratingsCount int64) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM (
			SELECT u.id,
			       COALESCE(AVG(r.value), 0) AS avg_rating,
			       COUNT(r.id) AS ratings_count
			FROM users u
			LEFT JOIN ratings r ON u.id = r.ratee_id
			GROUP BY u.id
		) lb
		WHERE lb.avg_rating > ? OR (lb.avg_rating = ? AND lb.ratings_count > ?)`,
		avgRating, avgRating, ratingsCount,
	).Scan(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "count outranking")
	}
	return count, nil
}

// LeaderboardPage 排行榜分页查询，search 对 name / email 做大小写不敏感的子串匹配
func (s *RatingRepoImpl) LeaderboardPage(ctx context.Context, search string, offset, limit int) ([]*model.LeaderboardRow, error) {
	rows := make([]*model.LeaderboardRow, 0, limit)
	pattern := "%" + strings.ToLower(search) + "%"

	result := s.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id, u.name, u.email, u.avatar_url,
		       COALESCE(AVG(r.value), 0) AS avg_rating,
		       COUNT(r.id) AS ratings_count
		FROM users u
		LEFT JOIN ratings r ON u.id = r.ratee_id
		WHERE LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ?
		GROUP BY u.id, u.name, u.email, u.avatar_url
		ORDER BY avg_rating DESC, ratings_count DESC
		LIMIT ? OFFSET ?`,
		pattern, pattern, limit, offset,
	).Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "leaderboard page")
	}
	return rows, nil
}

func (s *RatingRepoImpl) CountUsers(ctx context.Context, search string) (int64, error) {
	var count int64
	pattern := "%" + strings.ToLower(search) + "%"
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "count users")
	}
	return count, nil
}

// SnapshotRanking 基于 before 之前创建的评分计算全量排名，用于涨跌标记。
// 过滤条件放在 WHERE 上，截止时刻前没有任何评分的用户不会出现在结果里，
// 上层把缺席视作排名不变。这是按需重算的近似快照，不是持久化的历史表。
func (s *RatingRepoImpl) SnapshotRanking(ctx context.Context, before time.Time) ([]*model.LeaderboardRow, error) {
	rows := make([]*model.LeaderboardRow, 0)
	result := s.db.WithContext(ctx).Raw(`
		SELECT u.id AS user_id,
		       COALESCE(AVG(r.value), 0) AS avg_rating,
		       COUNT(r.id) AS ratings_count
		FROM users u
		LEFT JOIN ratings r ON u.id = r.ratee_id
		WHERE r.created_at < ?
		GROUP BY u.id
		ORDER BY avg_rating DESC, ratings_count DESC`,
		before,
	).Scan(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "snapshot ranking")
	}
	return rows, nil
}
