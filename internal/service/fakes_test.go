package service

import (
	"Kudos/internal/model"
	"context"
	"sort"
	"strings"
	"time"
)

// 内存假仓库，聚合语义与 SQL 实现保持一致：全量现算，排序用 Outranks

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) addUser(id, name, email string) {
	f.users[id] = &model.User{ID: id, Name: name, Email: email}
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpsertUser(_ context.Context, user *model.User) error {
	if existing, ok := f.users[user.ID]; ok {
		existing.Name = user.Name
		existing.Email = user.Email
		existing.AvatarURL = user.AvatarURL
		return nil
	}
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return nil
}

type fakeRatingRepo struct {
	users    *fakeUserRepo
	ratings  map[uint64]*model.Rating
	nextID   uint64
	batchErr error
}

func newFakeRatingRepo(users *fakeUserRepo) *fakeRatingRepo {
	return &fakeRatingRepo{users: users, ratings: make(map[uint64]*model.Rating)}
}

func (f *fakeRatingRepo) addRating(raterID, rateeID string, value int, createdAt time.Time) {
	f.nextID++
	f.ratings[f.nextID] = &model.Rating{
		ID:        f.nextID,
		RaterID:   raterID,
		RateeID:   rateeID,
		Value:     value,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func (f *fakeRatingRepo) Upsert(_ context.Context, rating *model.Rating) error {
	for _, existing := range f.ratings {
		if existing.RaterID == rating.RaterID && existing.RateeID == rating.RateeID {
			existing.Value = rating.Value
			existing.UpdatedAt = rating.UpdatedAt
			rating.ID = existing.ID
			return nil
		}
	}
	f.nextID++
	rating.ID = f.nextID
	f.ratings[rating.ID] = rating
	return nil
}

func (f *fakeRatingRepo) UpsertBatch(ctx context.Context, ratings []*model.Rating) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, rating := range ratings {
		if err := f.Upsert(ctx, rating); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRatingRepo) GetByID(_ context.Context, id uint64) (*model.Rating, error) {
	return f.ratings[id], nil
}

func (f *fakeRatingRepo) GetByPair(_ context.Context, raterID, rateeID string) (*model.Rating, error) {
	for _, rating := range f.ratings {
		if rating.RaterID == raterID && rating.RateeID == rateeID {
			return rating, nil
		}
	}
	return nil, nil
}

func (f *fakeRatingRepo) ListByRater(_ context.Context, raterID string) ([]*model.Rating, error) {
	list := make([]*model.Rating, 0)
	for _, rating := range f.ratings {
		if rating.RaterID == raterID {
			list = append(list, rating)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f *fakeRatingRepo) Delete(_ context.Context, id uint64) error {
	delete(f.ratings, id)
	return nil
}

func (f *fakeRatingRepo) Aggregate(_ context.Context, userID string, before *time.Time) (float64, int64, error) {
	var sum, count int64
	for _, rating := range f.ratings {
		if rating.RateeID != userID {
			continue
		}
		if before != nil && !rating.CreatedAt.Before(*before) {
			continue
		}
		sum += int64(rating.Value)
		count++
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

func (f *fakeRatingRepo) Distribution(_ context.Context, userID string) ([5]int64, error) {
	var distribution [5]int64
	for _, rating := range f.ratings {
		if rating.RateeID == userID && rating.Value >= 1 && rating.Value <= 5 {
			distribution[5-rating.Value]++
		}
	}
	return distribution, nil
}

func (f *fakeRatingRepo) CountOutranking(_ context.Context, avgRating float64, ratingsCount int64) (int64, error) {
	var count int64
	for _, row := range f.rows(nil) {
		if Outranks(row.AvgRating, row.RatingsCount, avgRating, ratingsCount) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRatingRepo) LeaderboardPage(_ context.Context, search string, offset, limit int) ([]*model.LeaderboardRow, error) {
	rows := f.rows(nil)
	rows = filterRows(rows, search)
	if offset >= len(rows) {
		return []*model.LeaderboardRow{}, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (f *fakeRatingRepo) CountUsers(_ context.Context, search string) (int64, error) {
	return int64(len(filterRows(f.rows(nil), search))), nil
}

func (f *fakeRatingRepo) SnapshotRanking(_ context.Context, before time.Time) ([]*model.LeaderboardRow, error) {
	rows := f.rows(&before)
	// 截止时刻前没有评分的用户不出现在快照里
	filtered := rows[:0]
	for _, row := range rows {
		if row.RatingsCount > 0 {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

func (f *fakeRatingRepo) rows(before *time.Time) []*model.LeaderboardRow {
	rows := make([]*model.LeaderboardRow, 0, len(f.users.users))
	for _, user := range f.users.users {
		avg, count, _ := f.Aggregate(context.Background(), user.ID, before)
		rows = append(rows, &model.LeaderboardRow{
			UserID:       user.ID,
			Name:         user.Name,
			Email:        user.Email,
			AvatarURL:    user.AvatarURL,
			AvgRating:    avg,
			RatingsCount: count,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if Outranks(a.AvgRating, a.RatingsCount, b.AvgRating, b.RatingsCount) {
			return true
		}
		if Outranks(b.AvgRating, b.RatingsCount, a.AvgRating, a.RatingsCount) {
			return false
		}
		return a.UserID < b.UserID
	})
	return rows
}

func filterRows(rows []*model.LeaderboardRow, search string) []*model.LeaderboardRow {
	if search == "" {
		return rows
	}
	needle := strings.ToLower(search)
	filtered := make([]*model.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), needle) ||
			strings.Contains(strings.ToLower(row.Email), needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

type publishedEvent struct {
	channel string
	event   string
	payload interface{}
}

type fakeNotifier struct {
	events []publishedEvent
	err    error
}

func (f *fakeNotifier) Publish(_ context.Context, channel, event string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, publishedEvent{channel: channel, event: event, payload: payload})
	return nil
}
