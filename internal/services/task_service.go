package services

import (
	"context"
	"time"

	apperrors "mood-planner.com/mood-planner/internal/errors"
	model "mood-planner.com/mood-planner/internal/models"
	repository "mood-planner.com/mood-planner/internal/repositories"
	"mood-planner.com/mood-planner/internal/timeline"
)

type TaskService struct {
	repo     *repository.TaskRepository
	pageSize int
}

func NewTaskService(repo *repository.TaskRepository, pageSize int) *TaskService {
	return &TaskService{
		repo:     repo,
		pageSize: pageSize,
	}
}

// TaskInput carries the validated fields of a create call.
type TaskInput struct {
	Title           string
	Moods           model.MoodList
	StartTime       time.Time
	DurationMinutes int
	Locked          bool
}

// TaskPatch updates only the fields that are set.
type TaskPatch struct {
	Title           *string
	Moods           *model.MoodList
	StartTime       *time.Time
	DurationMinutes *int
	Locked          *bool
}

func validateInput(in *TaskInput) error {
	if in.Title == "" {
		return apperrors.NewValidation("task title is required")
	}
	if len(in.Moods) == 0 {
		return apperrors.NewValidation("at least one mood is required")
	}
	if in.StartTime.IsZero() {
		return apperrors.NewValidation("timestamp is required")
	}
	if in.DurationMinutes <= 0 {
		return apperrors.NewValidation("length must be positive")
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, ownerID int64, in TaskInput) (*model.Task, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	task := &model.Task{
		OwnerID:         ownerID,
		Title:           in.Title,
		Moods:           in.Moods,
		StartTime:       in.StartTime,
		DurationMinutes: in.DurationMinutes,
		Locked:          in.Locked,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, id int64) (*model.Task, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

// List returns one page of the owner's tasks plus the total page count.
// mood filters on a tag, date ("YYYY-MM-DD") restricts to one day.
func (s *TaskService) List(ctx context.Context, ownerID int64, page int, mood, date string) ([]model.Task, int, error) {
	if page < 1 {
		page = 1
	}

	q := repository.TaskQuery{Mood: mood}
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, 0, apperrors.NewValidation("malformed date, expected YYYY-MM-DD")
		}
		q.Day = &day
	}

	tasks, total, err := s.repo.ListByOwner(ctx, ownerID, page, s.pageSize, q)
	if err != nil {
		return nil, 0, err
	}

	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))
	return tasks, totalPages, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, id int64, patch TaskPatch) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Moods != nil {
		task.Moods = *patch.Moods
	}
	if patch.StartTime != nil {
		task.StartTime = *patch.StartTime
	}
	if patch.DurationMinutes != nil {
		task.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Locked != nil {
		task.Locked = *patch.Locked
	}

	in := TaskInput{
		Title:           task.Title,
		Moods:           task.Moods,
		StartTime:       task.StartTime,
		DurationMinutes: task.DurationMinutes,
	}
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Complete marks a task done. There is no way back; completing an
// already completed task is a no-op.
func (s *TaskService) Complete(ctx context.Context, ownerID, id int64) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return task, nil
	}

	task.Completed = true
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) SetLocked(ctx context.Context, ownerID, id int64, locked bool) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if task.Locked == locked {
		return task, nil
	}

	task.Locked = locked
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// TimelineSaver returns an updater the drag editor saves through,
// scoped to one owner.
func (s *TaskService) TimelineSaver(ownerID int64) timeline.TaskUpdater {
	return timelineSaver{repo: s.repo, ownerID: ownerID}
}

type timelineSaver struct {
	repo    *repository.TaskRepository
	ownerID int64
}

func (t timelineSaver) UpdateStartTime(ctx context.Context, u timeline.TaskUpdate) error {
	return t.repo.UpdateStartTime(ctx, t.ownerID, u.ID, u.StartTime)
}
