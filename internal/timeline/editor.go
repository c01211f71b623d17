package timeline

import (
	"context"
	"errors"
	"time"

	model "mood-planner.com/mood-planner/internal/models"
	"mood-planner.com/mood-planner/internal/schedule"
)

// Editor errors.
var (
	ErrTaskNotInDay    = errors.New("task not part of the edited day")
	ErrAlreadyDragging = errors.New("another drag is in progress")
	ErrNotDragging     = errors.New("no drag in progress")
)

const (
	// SnapIntervalMinutes is the grid a released drag snaps to.
	SnapIntervalMinutes = 15
	// MinutesPerDay bounds candidate start minutes.
	MinutesPerDay = 24 * 60
)

// TaskUpdate is one changed start time to persist.
type TaskUpdate struct {
	ID        int64
	StartTime time.Time
}

// TaskUpdater persists a single task's new start time. The editor calls
// it once per changed task during Save; it is the only collaborator the
// editor talks to.
type TaskUpdater interface {
	UpdateStartTime(ctx context.Context, update TaskUpdate) error
}

// Editor is the manual drag-to-reschedule surface for one day. It holds
// a local working copy of the day's tasks; nothing is persisted until
// Save. A task is either idle or, for at most one task at a time, mid
// drag. Releasing on a conflict reverts; releasing on free space snaps
// the start to the grid and updates the working copy.
type Editor struct {
	day      time.Time
	working  []model.Task
	original map[int64]time.Time

	dragging  int64 // 0 while idle
	candidate int   // candidate start minute while dragging
	conflict  bool
}

// NewEditor captures a working copy of tasks for the given day. The
// day's midnight anchors minute-of-day arithmetic.
func NewEditor(day time.Time, tasks []model.Task) *Editor {
	e := &Editor{
		day:      time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		working:  make([]model.Task, len(tasks)),
		original: make(map[int64]time.Time, len(tasks)),
	}
	copy(e.working, tasks)
	for _, t := range tasks {
		e.original[t.ID] = t.StartTime
	}
	return e
}

// BeginDrag starts dragging the given task. Only one task can be
// dragged at a time.
func (e *Editor) BeginDrag(id int64) error {
	if e.dragging != 0 {
		return ErrAlreadyDragging
	}
	t := e.task(id)
	if t == nil {
		return ErrTaskNotInDay
	}
	e.dragging = id
	e.candidate = e.minuteOf(t.StartTime)
	e.conflict = false
	return nil
}

// MoveTo records a new candidate start minute for the dragged task and
// reports whether that placement conflicts with any other task in the
// working copy. The verdict is advisory; nothing is committed.
func (e *Editor) MoveTo(minute int) (bool, error) {
	if e.dragging == 0 {
		return false, ErrNotDragging
	}
	t := e.task(e.dragging)
	e.candidate = minute
	e.conflict = schedule.Conflicts(e.timeAt(minute), t.DurationMinutes, t.ID, e.working)
	return e.conflict, nil
}

// Conflicting returns the id of the task currently highlighted as
// conflicting, or 0.
func (e *Editor) Conflicting() int64 {
	if e.dragging != 0 && e.conflict {
		return e.dragging
	}
	return 0
}

// Release ends the drag. At a conflicting final position the task
// reverts to its pre-drag start and Release reports false. Otherwise
// the candidate minute snaps to the grid, clamps to the day, and the
// working copy is updated.
func (e *Editor) Release() (bool, error) {
	if e.dragging == 0 {
		return false, ErrNotDragging
	}
	t := e.task(e.dragging)
	defer e.reset()

	if schedule.Conflicts(e.timeAt(e.candidate), t.DurationMinutes, t.ID, e.working) {
		return false, nil
	}

	t.StartTime = e.timeAt(Snap(e.candidate, t.DurationMinutes))
	return true, nil
}

// CancelDrag abandons the drag without touching the working copy.
func (e *Editor) CancelDrag() {
	e.reset()
}

func (e *Editor) reset() {
	e.dragging = 0
	e.conflict = false
}

// Snap rounds a candidate start minute to the nearest grid boundary and
// clamps it so the whole task fits inside the day.
func Snap(minute, durationMinutes int) int {
	snapped := (minute + SnapIntervalMinutes/2) / SnapIntervalMinutes * SnapIntervalMinutes
	if snapped < 0 {
		snapped = 0
	}
	if snapped+durationMinutes > MinutesPerDay {
		snapped = (MinutesPerDay - durationMinutes) / SnapIntervalMinutes * SnapIntervalMinutes
	}
	return snapped
}

// Tasks exposes the current working copy, in load order.
func (e *Editor) Tasks() []model.Task {
	out := make([]model.Task, len(e.working))
	copy(out, e.working)
	return out
}

// Changes diffs the working copy against the originally loaded tasks.
// A task dragged back to its original start yields nothing: "changed"
// is computed by comparing values, not by tracking assignments.
func (e *Editor) Changes() []TaskUpdate {
	var updates []TaskUpdate
	for i := range e.working {
		t := &e.working[i]
		if orig, ok := e.original[t.ID]; ok && !t.StartTime.Equal(orig) {
			updates = append(updates, TaskUpdate{ID: t.ID, StartTime: t.StartTime})
		}
	}
	return updates
}

// Save issues one update call per changed task. It stops at the first
// failure; the working copy is kept so the save can be retried.
func (e *Editor) Save(ctx context.Context, updater TaskUpdater) error {
	for _, u := range e.Changes() {
		if err := updater.UpdateStartTime(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

// Discard throws away all local edits, restoring every task to its
// originally loaded start time.
func (e *Editor) Discard() {
	e.reset()
	for i := range e.working {
		if orig, ok := e.original[e.working[i].ID]; ok {
			e.working[i].StartTime = orig
		}
	}
}

func (e *Editor) task(id int64) *model.Task {
	for i := range e.working {
		if e.working[i].ID == id {
			return &e.working[i]
		}
	}
	return nil
}

func (e *Editor) minuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func (e *Editor) timeAt(minute int) time.Time {
	return e.day.Add(time.Duration(minute) * time.Minute)
}
