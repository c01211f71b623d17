package leaderboard

import (
	"context"

	"github.com/redis/rueidis"
)

// RedisLeaderboard keeps streak scores in a sorted set.
type RedisLeaderboard struct {
	client rueidis.Client
	key    string
}

func NewRedisLeaderboard(client rueidis.Client, key string) *RedisLeaderboard {
	return &RedisLeaderboard{
		client: client,
		key:    key,
	}
}

func (r *RedisLeaderboard) SetScore(ctx context.Context, username string, streak int) error {
	cmd := r.client.B().Zadd().Key(r.key).
		ScoreMember().ScoreMember(float64(streak), username).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisLeaderboard) Top(ctx context.Context) ([]Entry, error) {
	cmd := r.client.B().Zrevrange().Key(r.key).Start(0).Stop(-1).Withscores().Build()
	scores, err := r.client.Do(ctx, cmd).AsZScores()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(scores))
	for _, s := range scores {
		entries = append(entries, Entry{Username: s.Member, Streak: int(s.Score)})
	}
	return entries, nil
}

func (r *RedisLeaderboard) Rebuild(ctx context.Context, entries []Entry) error {
	delCmd := r.client.B().Del().Key(r.key).Build()
	if err := r.client.Do(ctx, delCmd).Error(); err != nil {
		return err
	}

	if len(entries) == 0 {
		return nil
	}

	add := r.client.B().Zadd().Key(r.key).ScoreMember()
	for _, e := range entries {
		add = add.ScoreMember(float64(e.Streak), e.Username)
	}
	return r.client.Do(ctx, add.Build()).Error()
}
