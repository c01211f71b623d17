package model

import "time"

// Task is a single scheduled item. Its occupied interval is the
// half-open range [StartTime, StartTime+DurationMinutes).
type Task struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	OwnerID         int64     `gorm:"index;not null" json:"-"`
	Title           string    `gorm:"not null" json:"task"`
	Moods           MoodList  `gorm:"type:text;not null" json:"mood"`
	StartTime       time.Time `gorm:"index;not null" json:"timestamp"`
	DurationMinutes int       `gorm:"not null;default:30" json:"length"`
	Completed       bool      `gorm:"not null;default:false" json:"isCompleted"`
	Locked          bool      `gorm:"not null;default:false" json:"isLocked"`
	Version         uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// End returns the exclusive end of the task's occupied interval.
func (t *Task) End() time.Time {
	return t.StartTime.Add(time.Duration(t.DurationMinutes) * time.Minute)
}

// Movable reports whether the automatic rescheduler may move the task.
// Locked and completed tasks stay where they are.
func (t *Task) Movable() bool {
	return !t.Locked && !t.Completed
}

// timestampLayouts are the wire forms clients and the external
// rescheduler are known to emit. The script historically printed ISO
// timestamps without a zone suffix.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses a task timestamp in any accepted wire form.
// Zone-less timestamps are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
