package service

import (
	"Kudos/internal/api/config"
	"Kudos/internal/api/dto"
	"Kudos/internal/model"
	"Kudos/internal/pkg/consts"
	"Kudos/internal/pkg/realtime"
	"Kudos/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type RatingService interface {
	Rate(ctx context.Context, raterID string, req *dto.RateDTO) (*dto.RatingResultDTO, error)
	RateBatch(ctx context.Context, raterID string, req *dto.RateBatchDTO) ([]*dto.RatingResultDTO, error)
	DeleteRating(ctx context.Context, raterID string, ratingID uint64) error
	ListOwnRatings(ctx context.Context, raterID string) ([]*dto.RatingDTO, error)
	GetUserAggregate(ctx context.Context, userID string) (*dto.UserAggregateDTO, error)
}

type RatingServiceImpl struct {
	ratingRepo      repository.RatingRepo
	userRepo        repository.UserRepo
	notifier        realtime.Notifier
	allowSelfRating bool
}

func NewRatingService(
	ratingRepo repository.RatingRepo,
	userRepo repository.UserRepo,
	notifier realtime.Notifier,
	policy config.PolicyConfig,
) RatingService {
	return &RatingServiceImpl{
		ratingRepo:      ratingRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		allowSelfRating: policy.AllowSelfRating,
	}
}

// Rate 单条评分：校验、按 (rater, ratee) upsert、重算聚合与名次、推送更新事件
func (s *RatingServiceImpl) Rate(ctx context.Context, raterID string, req *dto.RateDTO) (*dto.RatingResultDTO, error) {
	if err := s.validateRating(raterID, req.RateeID, req.Value); err != nil {
		return nil, err
	}

	ratee, err := s.userRepo.GetUserByID(ctx, req.RateeID)
	if err != nil {
		return nil, err
	}
	if ratee == nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	rating := &model.Rating{
		RaterID:   raterID,
		RateeID:   req.RateeID,
		Value:     req.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	result, err := s.refreshAggregate(ctx, req.RateeID)
	if err != nil {
		return nil, err
	}

	s.publishUpdate(ctx, result)
	return result, nil
}

// RateBatch 批量评分。先对整批做完整校验，任一条非法则整批拒绝、零写入；
// 写入在单事务内完成，提交后按去重后的被评用户各推一条事件（取最终状态）。
func (s *RatingServiceImpl) RateBatch(ctx context.Context, raterID string, req *dto.RateBatchDTO) ([]*dto.RatingResultDTO, error) {
	if raterID == "" {
		return nil, UnauthorizedError
	}
	if len(req.Ratings) == 0 {
		return nil, ErrParamInvalid
	}

	for i := range req.Ratings {
		if err := s.validateRating(raterID, req.Ratings[i].RateeID, req.Ratings[i].Value); err != nil {
			return nil, err
		}
	}

	// 被评用户去重，保持首次出现的顺序
	affected := make([]string, 0, len(req.Ratings))
	seen := make(map[string]struct{}, len(req.Ratings))
	for i := range req.Ratings {
		rateeID := req.Ratings[i].RateeID
		if _, ok := seen[rateeID]; ok {
			continue
		}
		seen[rateeID] = struct{}{}
		affected = append(affected, rateeID)
	}

	for _, rateeID := range affected {
		ratee, err := s.userRepo.GetUserByID(ctx, rateeID)
		if err != nil {
			return nil, err
		}
		if ratee == nil {
			return nil, ErrUserNotFound
		}
	}

	now := time.Now()
	ratings := make([]*model.Rating, 0, len(req.Ratings))
	for i := range req.Ratings {
		ratings = append(ratings, &model.Rating{
			RaterID:   raterID,
			RateeID:   req.Ratings[i].RateeID,
			Value:     req.Ratings[i].Value,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := s.ratingRepo.UpsertBatch(ctx, ratings); err != nil {
		return nil, err
	}

	results := make([]*dto.RatingResultDTO, 0, len(affected))
	for _, rateeID := range affected {
		result, err := s.refreshAggregate(ctx, rateeID)
		if err != nil {
			return nil, err
		}
		s.publishUpdate(ctx, result)
		results = append(results, result)
	}
	return results, nil
}

// DeleteRating 只允许评分的发起者删除自己的评分，删除后同样广播被评用户的新状态
func (s *RatingServiceImpl) DeleteRating(ctx context.Context, raterID string, ratingID uint64) error {
	if raterID == "" {
		return UnauthorizedError
	}

	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating == nil {
		return ErrRatingNotFound
	}
	if rating.RaterID != raterID {
		return ErrNotRatingOwner
	}

	if err = s.ratingRepo.Delete(ctx, ratingID); err != nil {
		return err
	}

	result, err := s.refreshAggregate(ctx, rating.RateeID)
	if err != nil {
		return err
	}
	s.publishUpdate(ctx, result)
	return nil
}

func (s *RatingServiceImpl) ListOwnRatings(ctx context.Context, raterID string) ([]*dto.RatingDTO, error) {
	if raterID == "" {
		return nil, UnauthorizedError
	}

	ratings, err := s.ratingRepo.ListByRater(ctx, raterID)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.RatingDTO, 0, len(ratings))
	for _, rating := range ratings {
		ratingDTO := &dto.RatingDTO{}
		if err = copier.Copy(ratingDTO, rating); err != nil {
			return nil, err
		}
		list = append(list, ratingDTO)
	}
	return list, nil
}

// GetUserAggregate 用户主页聚合：平均分、总评分数、星级分布
func (s *RatingServiceImpl) GetUserAggregate(ctx context.Context, userID string) (*dto.UserAggregateDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	avgRating, count, err := s.ratingRepo.Aggregate(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	distribution, err := s.ratingRepo.Distribution(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserAggregateDTO{
		UserID:             userID,
		AverageRating:      Round1(avgRating),
		TotalRatings:       count,
		RatingDistribution: distribution,
	}, nil
}

// validateRating 校验顺序固定：主体、分值、目标、自评策略，各自是独立的失败类别
func (s *RatingServiceImpl) validateRating(raterID, rateeID string, value int) error {
	if raterID == "" {
		return UnauthorizedError
	}
	if value < 1 || value > 5 {
		return ErrRatingValueInvalid
	}
	if rateeID == "" {
		return ErrRateeRequired
	}
	if !s.allowSelfRating && raterID == rateeID {
		return ErrSelfRating
	}
	return nil
}

// refreshAggregate 全量重算被评用户的聚合与名次，名次比较用全精度平均分
func (s *RatingServiceImpl) refreshAggregate(ctx context.Context, userID string) (*dto.RatingResultDTO, error) {
	avgRating, count, err := s.ratingRepo.Aggregate(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	outranked, err := s.ratingRepo.CountOutranking(ctx, avgRating, count)
	if err != nil {
		return nil, err
	}

	return &dto.RatingResultDTO{
		UserID:        userID,
		AverageRating: Round1(avgRating),
		RatingsCount:  count,
		Rank:          outranked + 1,
	}, nil
}

// publishUpdate 推送尽力而为：发布失败只记日志，绝不回滚已提交的评分
func (s *RatingServiceImpl) publishUpdate(ctx context.Context, result *dto.RatingResultDTO) {
	err := s.notifier.Publish(ctx, consts.LeaderboardChannel, consts.EventRatingUpdated, result)
	if err != nil {
		log.WarnContext(ctx, "Failed to publish rating-updated event", "userId", result.UserID, "err", err)
	}
}
