package leaderboard

import "context"

// Entry is one leaderboard row.
type Entry struct {
	Username string
	Streak   int
}

// Leaderboard holds streak scores for the rank view. The users table is
// the source of truth; the board is a read model kept in sync on every
// check-in and rebuilt nightly.
type Leaderboard interface {
	SetScore(ctx context.Context, username string, streak int) error

	Top(ctx context.Context) ([]Entry, error)

	Rebuild(ctx context.Context, entries []Entry) error
}
