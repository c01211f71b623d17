package schedule

import (
	"time"

	apperrors "mood-planner.com/mood-planner/internal/errors"
	model "mood-planner.com/mood-planner/internal/models"
)

// Slot is an occupied interval the rescheduler must not place movable
// tasks into.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MovableTask is the subset of a task the external rescheduler needs.
// Version is a snapshot for the stale-result guard and is never sent to
// the process.
type MovableTask struct {
	ID              int64          `json:"id"`
	Title           string         `json:"task"`
	Moods           model.MoodList `json:"mood"`
	StartTime       time.Time      `json:"timestamp"`
	DurationMinutes int            `json:"length"`
	Version         uint           `json:"-"`
}

// Request is the payload fed to the external rescheduler on stdin.
type Request struct {
	Date         string        `json:"date"`
	CurrentMood  string        `json:"currentMood"`
	Tasks        []MovableTask `json:"tasks"`
	BlockedSlots []Slot        `json:"blockedSlots"`
}

// BuildRequest partitions a day's tasks into blocked slots (locked or
// completed tasks) and the movable set. It fails with ErrNoMovableTasks
// when nothing is eligible to move; an empty movable set is never
// returned silently.
func BuildRequest(date, currentMood string, tasks []model.Task) (*Request, error) {
	req := &Request{
		Date:        date,
		CurrentMood: currentMood,
	}

	for i := range tasks {
		t := &tasks[i]
		if !t.Movable() {
			req.BlockedSlots = append(req.BlockedSlots, Slot{Start: t.StartTime, End: t.End()})
			continue
		}
		req.Tasks = append(req.Tasks, MovableTask{
			ID:              t.ID,
			Title:           t.Title,
			Moods:           t.Moods,
			StartTime:       t.StartTime,
			DurationMinutes: t.DurationMinutes,
			Version:         t.Version,
		})
	}

	if len(req.Tasks) == 0 {
		return nil, apperrors.ErrNoMovableTasks
	}

	return req, nil
}
