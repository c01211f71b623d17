package services

import (
	"context"
	"time"

	apperrors "mood-planner.com/mood-planner/internal/errors"
	repository "mood-planner.com/mood-planner/internal/repositories"
	"mood-planner.com/mood-planner/internal/rescheduler"
	"mood-planner.com/mood-planner/internal/schedule"
)

// RescheduleService drives an automatic reschedule: build the request,
// run the external process, apply its placements in one batch.
type RescheduleService struct {
	repo   *repository.TaskRepository
	runner rescheduler.Runner
}

func NewRescheduleService(repo *repository.TaskRepository, runner rescheduler.Runner) *RescheduleService {
	return &RescheduleService{
		repo:   repo,
		runner: runner,
	}
}

// Reschedule rearranges the owner's movable tasks for the given date.
// It returns the number of tasks that actually moved. The store is
// never partially updated: either every placement lands or none does.
func (s *RescheduleService) Reschedule(ctx context.Context, ownerID int64, date, currentMood string) (int, error) {
	if currentMood == "" {
		return 0, apperrors.NewValidation("currentMood is required")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, apperrors.NewValidation("malformed date, expected YYYY-MM-DD")
	}

	tasks, err := s.repo.ListForDay(ctx, ownerID, day)
	if err != nil {
		return 0, err
	}

	req, err := schedule.BuildRequest(date, currentMood, tasks)
	if err != nil {
		return 0, err
	}

	placements, err := s.runner.Run(ctx, req)
	if err != nil {
		return 0, err
	}

	updates, err := placementUpdates(req, placements)
	if err != nil {
		return 0, err
	}
	if len(updates) == 0 {
		return 0, nil
	}

	if err := s.repo.ApplyPlacements(ctx, ownerID, updates); err != nil {
		return 0, err
	}
	return len(updates), nil
}

// placementUpdates matches the process output against the movable set.
// Placements for ids that were never sent fail the whole result;
// placements that echo the current start back are dropped, so an
// unchanged schedule writes nothing.
func placementUpdates(req *schedule.Request, placements []rescheduler.Placement) ([]repository.TimestampUpdate, error) {
	movable := make(map[int64]schedule.MovableTask, len(req.Tasks))
	for _, t := range req.Tasks {
		movable[t.ID] = t
	}

	var updates []repository.TimestampUpdate
	for _, p := range placements {
		m, ok := movable[p.ID]
		if !ok {
			return nil, apperrors.ErrRescheduleFailed
		}
		if p.StartTime.Equal(m.StartTime) {
			continue
		}
		updates = append(updates, repository.TimestampUpdate{
			ID:        p.ID,
			StartTime: p.StartTime,
			Version:   m.Version,
		})
	}
	return updates, nil
}
