package schedule

import (
	"time"

	model "mood-planner.com/mood-planner/internal/models"
)

// Conflicts reports whether the candidate interval
// [candidateStart, candidateStart+durationMinutes) overlaps the occupied
// interval of any task in tasks other than excludeID.
//
// Intervals are half-open, so a task ending exactly when another starts
// does not conflict with it.
func Conflicts(candidateStart time.Time, durationMinutes int, excludeID int64, tasks []model.Task) bool {
	candidateEnd := candidateStart.Add(time.Duration(durationMinutes) * time.Minute)

	for i := range tasks {
		other := &tasks[i]
		if other.ID == excludeID {
			continue
		}
		if candidateStart.Before(other.End()) && candidateEnd.After(other.StartTime) {
			return true
		}
	}

	return false
}
