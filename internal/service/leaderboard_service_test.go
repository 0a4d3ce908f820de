package service

import (
	"Kudos/internal/api/dto"
	"context"
	"fmt"
	"testing"
	"time"
)

func newLeaderboardFixture(window time.Duration) (*fakeUserRepo, *fakeRatingRepo, LeaderboardService) {
	userRepo := newFakeUserRepo()
	ratingRepo := newFakeRatingRepo(userRepo)
	return userRepo, ratingRepo, NewLeaderboardService(ratingRepo, window)
}

// fillRatings 为 rateeID 制造 count 条平均分为 avg 的评分（avg*10 须为 0.5 的倍数时小心取值）
func fillRatings(repo *fakeRatingRepo, rateeID string, values []int, createdAt time.Time) {
	for i, value := range values {
		repo.addRating(fmt.Sprintf("rater-%s-%d", rateeID, i), rateeID, value, createdAt)
	}
}

func TestListOrdering(t *testing.T) {
	userRepo, ratingRepo, svc := newLeaderboardFixture(24 * time.Hour)
	userRepo.addUser("a", "Anna", "anna@example.com")
	userRepo.addUser("b", "Bert", "bert@example.com")
	userRepo.addUser("c", "Cleo", "cleo@example.com")

	now := time.Now()
	// a: avg 4.5 / 10 票，b: avg 4.5 / 8 票，c: avg 4.0 / 20 票
	fillRatings(ratingRepo, "a", []int{4, 4, 4, 4, 4, 5, 5, 5, 5, 5}, now)
	fillRatings(ratingRepo, "b", []int{4, 4, 4, 4, 5, 5, 5, 5}, now)
	fillRatings(ratingRepo, "c", []int{4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4}, now)

	page, err := svc.List(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Data) != 3 {
		t.Fatalf("got %d entries, want 3", len(page.Data))
	}

	wantOrder := []string{"a", "b", "c"}
	for i, want := range wantOrder {
		entry := page.Data[i]
		if entry.UserID != want {
			t.Errorf("position %d = %s, want %s", i, entry.UserID, want)
		}
		if entry.Rank != int64(i+1) {
			t.Errorf("entry %s rank = %d, want %d", entry.UserID, entry.Rank, i+1)
		}
	}
	if page.Data[0].AverageRating != 4.5 || page.Data[2].AverageRating != 4.0 {
		t.Errorf("rounded averages = %v / %v, want 4.5 / 4.0",
			page.Data[0].AverageRating, page.Data[2].AverageRating)
	}
	if page.Data[0].Username != "anna" {
		t.Errorf("Username = %q, want email local part %q", page.Data[0].Username, "anna")
	}
}

func TestListUnratedUsersRankLast(t *testing.T) {
	userRepo, ratingRepo, svc := newLeaderboardFixture(24 * time.Hour)
	userRepo.addUser("a", "Anna", "anna@example.com")
	userRepo.addUser("z", "Zed", "zed@example.com")
	fillRatings(ratingRepo, "a", []int{3}, time.Now())

	page, err := svc.List(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Data) != 2 {
		t.Fatalf("unrated users must still be listed, got %d entries", len(page.Data))
	}

	zed := page.Data[1]
	if zed.UserID != "z" {
		t.Fatalf("last entry = %s, want the unrated user z", zed.UserID)
	}
	if zed.AverageRating != 0 || zed.RatingsCount != 0 {
		t.Errorf("unrated user got avg=%v count=%v, want 0/0", zed.AverageRating, zed.RatingsCount)
	}
	if zed.Rank != 2 {
		t.Errorf("unrated user rank = %d, want 2", zed.Rank)
	}
	// 快照里也不存在，标记为不变
	if zed.Change != dto.ChangeSame {
		t.Errorf("unrated user change = %q, want %q", zed.Change, dto.ChangeSame)
	}
}

func TestListGlobalRankAcrossPages(t *testing.T) {
	userRepo, ratingRepo, svc := newLeaderboardFixture(24 * time.Hour)

	now := time.Now()
	// 15 个用户，平均分严格递减，保证顺序确定
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("u%02d", i)
		userRepo.addUser(id, fmt.Sprintf("User %02d", i), id+"@example.com")
		// 15 票里有 i 票是 1 分，其余 5 分：i 越小平均分越高
		values := make([]int, 0, 15)
		for j := 0; j < 15; j++ {
			if j < i {
				values = append(values, 1)
			} else {
				values = append(values, 5)
			}
		}
		fillRatings(ratingRepo, id, values, now)
	}

	page1, err := svc.List(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("List(page 1) error = %v", err)
	}
	page2, err := svc.List(context.Background(), "", 2, 10)
	if err != nil {
		t.Fatalf("List(page 2) error = %v", err)
	}

	if got := page1.Data[len(page1.Data)-1].Rank; got != 10 {
		t.Errorf("last rank on page 1 = %d, want 10", got)
	}
	if got := page2.Data[0].Rank; got != 11 {
		t.Errorf("first rank on page 2 = %d, want 11 (global, not reset per page)", got)
	}

	if page1.Pagination.Total != 15 {
		t.Errorf("Total = %d, want 15", page1.Pagination.Total)
	}
	if page1.Pagination.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", page1.Pagination.TotalPages)
	}
	if len(page2.Data) != 5 {
		t.Errorf("page 2 has %d entries, want 5", len(page2.Data))
	}
}

func TestListChangeIndicators(t *testing.T) {
	userRepo, ratingRepo, svc := newLeaderboardFixture(24 * time.Hour)
	userRepo.addUser("a", "Anna", "anna@example.com")
	userRepo.addUser("b", "Bert", "bert@example.com")
	userRepo.addUser("n", "Newbie", "newbie@example.com")

	old := time.Now().Add(-48 * time.Hour)
	// 窗口前：a 领先 b
	fillRatings(ratingRepo, "a", []int{4, 4}, old)
	fillRatings(ratingRepo, "b", []int{3, 3}, old)
	// 窗口内：b 反超，n 首次上榜
	for i := 0; i < 6; i++ {
		ratingRepo.addRating(fmt.Sprintf("late-rater-%d", i), "b", 5, time.Now())
	}
	fillRatings(ratingRepo, "n", []int{4}, time.Now())

	page, err := svc.List(context.Background(), "", 1, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	changes := make(map[string]string, len(page.Data))
	ranks := make(map[string]int64, len(page.Data))
	for _, entry := range page.Data {
		changes[entry.UserID] = entry.Change
		ranks[entry.UserID] = entry.Rank
	}

	// b: avg 4.5/8 第 1（快照里第 2）→ up；a: avg 4.0/2 第 2（快照里第 1）→ down
	if ranks["b"] != 1 || ranks["a"] != 2 {
		t.Fatalf("ranks = %v, want b=1 a=2", ranks)
	}
	if changes["b"] != dto.ChangeUp {
		t.Errorf("b change = %q, want %q", changes["b"], dto.ChangeUp)
	}
	if changes["a"] != dto.ChangeDown {
		t.Errorf("a change = %q, want %q", changes["a"], dto.ChangeDown)
	}
	// 快照里不存在的用户视作名次不变
	if changes["n"] != dto.ChangeSame {
		t.Errorf("n change = %q, want %q", changes["n"], dto.ChangeSame)
	}
}

func TestListSearch(t *testing.T) {
	userRepo, ratingRepo, svc := newLeaderboardFixture(24 * time.Hour)
	userRepo.addUser("a", "Anna Smith", "anna@corp.io")
	userRepo.addUser("b", "Bert Jones", "bert@corp.io")
	userRepo.addUser("c", "Cleo Jones", "cleo@other.net")
	fillRatings(ratingRepo, "a", []int{5}, time.Now())
	fillRatings(ratingRepo, "b", []int{4}, time.Now())
	fillRatings(ratingRepo, "c", []int{3}, time.Now())

	t.Run("by name case-insensitive", func(t *testing.T) {
		page, err := svc.List(context.Background(), "JONES", 1, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(page.Data) != 2 {
			t.Fatalf("got %d entries, want 2", len(page.Data))
		}
		if page.Data[0].UserID != "b" || page.Data[1].UserID != "c" {
			t.Errorf("order = %s,%s, want b,c", page.Data[0].UserID, page.Data[1].UserID)
		}
		if page.Pagination.Total != 2 {
			t.Errorf("Total = %d, want 2", page.Pagination.Total)
		}
	})

	t.Run("by email", func(t *testing.T) {
		page, err := svc.List(context.Background(), "other.net", 1, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(page.Data) != 1 || page.Data[0].UserID != "c" {
			t.Fatalf("want only c, got %d entries", len(page.Data))
		}
	})

	t.Run("no match", func(t *testing.T) {
		page, err := svc.List(context.Background(), "zzz", 1, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(page.Data) != 0 || page.Pagination.Total != 0 {
			t.Errorf("want empty page, got %d entries / total %d", len(page.Data), page.Pagination.Total)
		}
	})
}

func TestRankOf(t *testing.T) {
	userRepo, ratingRepo, svc := newLeaderboardFixture(24 * time.Hour)
	userRepo.addUser("a", "Anna", "anna@example.com")
	userRepo.addUser("b", "Bert", "bert@example.com")
	userRepo.addUser("c", "Cleo", "cleo@example.com")

	now := time.Now()
	fillRatings(ratingRepo, "a", []int{5, 5}, now)
	fillRatings(ratingRepo, "b", []int{4, 4}, now)
	fillRatings(ratingRepo, "c", []int{3}, now)

	rank, err := svc.RankOf(context.Background(), 4.0, 2)
	if err != nil {
		t.Fatalf("RankOf() error = %v", err)
	}
	if rank != 2 {
		t.Errorf("RankOf(4.0, 2) = %d, want 2", rank)
	}
}
