package services

import (
	"context"
	"log"
	"sort"
	"time"

	"mood-planner.com/mood-planner/internal/leaderboard"
	repository "mood-planner.com/mood-planner/internal/repositories"
)

const checkinDateLayout = "2006-01-02"

// StreakService keeps per-user daily check-in streaks and the rank
// view derived from them.
type StreakService struct {
	users *repository.UserRepository
	board leaderboard.Leaderboard
	now   func() time.Time
}

func NewStreakService(users *repository.UserRepository, board leaderboard.Leaderboard) *StreakService {
	return &StreakService{
		users: users,
		board: board,
		now:   time.Now,
	}
}

// RankEntry is one row of the rank view.
type RankEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Streak   int    `json:"streak"`
	IsMe     bool   `json:"isMe"`
}

// CheckIn records today's check-in. Checking in twice on the same day
// keeps the streak; a check-in adjacent to yesterday's extends it;
// anything else restarts at 1. alreadyDone reports the same-day case.
func (s *StreakService) CheckIn(ctx context.Context, userID int64) (streak int, alreadyDone bool, err error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, false, err
	}

	today := s.now().UTC().Format(checkinDateLayout)
	if user.LastCheckinDate == today {
		return user.StreakCount, true, nil
	}

	yesterday := s.now().UTC().AddDate(0, 0, -1).Format(checkinDateLayout)
	streak = 1
	if user.LastCheckinDate == yesterday {
		streak = user.StreakCount + 1
	}

	if err := s.users.UpdateStreak(ctx, userID, today, streak); err != nil {
		return 0, false, err
	}

	// keep the board warm; the nightly resync repairs missed writes
	if err := s.board.SetScore(ctx, user.Username, streak); err != nil {
		log.Printf("leaderboard: failed to record streak for %s: %v", user.Username, err)
	}

	return streak, false, nil
}

func (s *StreakService) Streak(ctx context.Context, userID int64) (int, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.StreakCount, nil
}

// Rank returns the leaderboard, longest streak first with ties broken
// by username, and flags the caller's own row.
func (s *StreakService) Rank(ctx context.Context, userID int64) ([]RankEntry, error) {
	me, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.board.Top(ctx)
	if err != nil {
		return nil, err
	}

	// redis orders ties by member desc; the rank view wants username asc
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Streak != entries[j].Streak {
			return entries[i].Streak > entries[j].Streak
		}
		return entries[i].Username < entries[j].Username
	})

	rank := make([]RankEntry, 0, len(entries))
	for i, e := range entries {
		rank = append(rank, RankEntry{
			Rank:     i + 1,
			Username: e.Username,
			Streak:   e.Streak,
			IsMe:     e.Username == me.Username,
		})
	}
	return rank, nil
}

// ResyncLeaderboard rebuilds the board from the users table. Wired to
// the nightly cron job.
func (s *StreakService) ResyncLeaderboard(ctx context.Context) error {
	users, err := s.users.ListByStreak(ctx)
	if err != nil {
		return err
	}

	entries := make([]leaderboard.Entry, 0, len(users))
	for _, u := range users {
		entries = append(entries, leaderboard.Entry{Username: u.Username, Streak: u.StreakCount})
	}
	return s.board.Rebuild(ctx, entries)
}
