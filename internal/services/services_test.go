package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mood-planner.com/mood-planner/internal/leaderboard"
	model "mood-planner.com/mood-planner/internal/models"
	"mood-planner.com/mood-planner/internal/rescheduler"
	"mood-planner.com/mood-planner/internal/schedule"
)

// mockRunner returns canned placements without spawning anything.
type mockRunner struct {
	placements []rescheduler.Placement
	err        error
	lastReq    *schedule.Request
}

func (m *mockRunner) Run(ctx context.Context, req *schedule.Request) ([]rescheduler.Placement, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.placements, nil
}

// mockBoard is a simple in-memory leaderboard for testing.
type mockBoard struct {
	mu     sync.Mutex
	scores map[string]int
	err    error
}

func newMockBoard() *mockBoard {
	return &mockBoard{scores: make(map[string]int)}
}

func (m *mockBoard) SetScore(ctx context.Context, username string, streak int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.scores[username] = streak
	return nil
}

func (m *mockBoard) Top(ctx context.Context) ([]leaderboard.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	entries := make([]leaderboard.Entry, 0, len(m.scores))
	for name, streak := range m.scores {
		entries = append(entries, leaderboard.Entry{Username: name, Streak: streak})
	}
	return entries, nil
}

func (m *mockBoard) Rebuild(ctx context.Context, entries []leaderboard.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = make(map[string]int, len(entries))
	for _, e := range entries {
		m.scores[e.Username] = e.Streak
	}
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&model.Task{}, &model.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := model.ParseTimestamp(value)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func taskInput(t *testing.T, start string, duration int) TaskInput {
	return TaskInput{
		Title:           "write report",
		Moods:           model.MoodList{"Focused"},
		StartTime:       mustTime(t, start),
		DurationMinutes: duration,
	}
}
