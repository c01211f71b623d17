package dto

import (
	apperrors "mood-planner.com/mood-planner/internal/errors"
	model "mood-planner.com/mood-planner/internal/models"
	"mood-planner.com/mood-planner/internal/services"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateTaskRequest uses the historical wire names: task, mood,
// timestamp, length. mood accepts either a tag list or a legacy single
// tag. length defaults to 30 minutes when omitted.
type CreateTaskRequest struct {
	Title     string         `json:"task"`
	Moods     model.MoodList `json:"mood"`
	Timestamp string         `json:"timestamp"`
	Length    int            `json:"length"`
	Locked    bool           `json:"isLocked"`
}

// Input converts the request into a validated service input.
func (r *CreateTaskRequest) Input() (services.TaskInput, error) {
	in := services.TaskInput{
		Title:           r.Title,
		Moods:           r.Moods,
		DurationMinutes: r.Length,
		Locked:          r.Locked,
	}
	if in.DurationMinutes == 0 {
		in.DurationMinutes = 30
	}
	if r.Timestamp != "" {
		ts, err := model.ParseTimestamp(r.Timestamp)
		if err != nil {
			return in, apperrors.NewValidation("malformed timestamp")
		}
		in.StartTime = ts
	}
	return in, nil
}

// UpdateTaskRequest patches only the fields present in the payload.
type UpdateTaskRequest struct {
	Title     *string         `json:"task"`
	Moods     *model.MoodList `json:"mood"`
	Timestamp *string         `json:"timestamp"`
	Length    *int            `json:"length"`
	Locked    *bool           `json:"isLocked"`
}

func (r *UpdateTaskRequest) Patch() (services.TaskPatch, error) {
	patch := services.TaskPatch{
		Title:           r.Title,
		Moods:           r.Moods,
		DurationMinutes: r.Length,
		Locked:          r.Locked,
	}
	if r.Timestamp != nil {
		ts, err := model.ParseTimestamp(*r.Timestamp)
		if err != nil {
			return patch, apperrors.NewValidation("malformed timestamp")
		}
		patch.StartTime = &ts
	}
	return patch, nil
}

type RescheduleRequest struct {
	Date        string `json:"date"`
	CurrentMood string `json:"currentMood"`
}
