package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "mood-planner.com/mood-planner/internal/errors"
	model "mood-planner.com/mood-planner/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TimestampUpdate is one version-guarded start-time rewrite, used by
// the rescheduler apply path.
type TimestampUpdate struct {
	ID        int64
	StartTime time.Time
	Version   uint
}

// TaskQuery narrows ListByOwner. Zero values mean "no filter".
type TaskQuery struct {
	Mood string
	Day  *time.Time
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	task.Version = 1
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return err
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, ownerID, id int64) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Update persists every mutable field of the task, guarded by the
// version the caller loaded. Zero affected rows means someone else won
// the race.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND owner_id = ? AND version = ?", task.ID, task.OwnerID, task.Version).
		Updates(map[string]interface{}{
			"title":            task.Title,
			"moods":            task.Moods,
			"start_time":       task.StartTime,
			"duration_minutes": task.DurationMinutes,
			"completed":        task.Completed,
			"locked":           task.Locked,
			"version":          gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}

// UpdateStartTime rewrites only the start time, guarded by the task's
// current version.
func (r *TaskRepository) UpdateStartTime(ctx context.Context, ownerID, id int64, start time.Time) error {
	task, err := r.FindByID(ctx, ownerID, id)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND owner_id = ? AND version = ?", id, ownerID, task.Version).
		Updates(map[string]interface{}{
			"start_time": start,
			"version":    gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// ListByOwner returns one page of the owner's tasks plus the unpaged
// total, ordered by start time.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64, page, pageSize int, q TaskQuery) ([]model.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{}).Where("owner_id = ?", ownerID)

	if q.Mood != "" {
		// moods is a JSON array column; match the quoted tag
		query = query.Where("moods LIKE ?", `%"`+q.Mood+`"%`)
	}
	if q.Day != nil {
		start, end := dayBounds(*q.Day)
		query = query.Where("start_time >= ? AND start_time < ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	err := query.Order("start_time asc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListForDay returns every task of the owner whose start time falls
// within the given day, ordered by start time.
func (r *TaskRepository) ListForDay(ctx context.Context, ownerID int64, day time.Time) ([]model.Task, error) {
	start, end := dayBounds(day)

	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND start_time >= ? AND start_time < ?", ownerID, start, end).
		Order("start_time asc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ApplyPlacements rewrites start times as one transaction. Every update
// must match its task's id, owner and snapshot version; a single miss
// rolls the whole batch back with ErrStaleReschedule, leaving the store
// untouched.
func (r *TaskRepository) ApplyPlacements(ctx context.Context, ownerID int64, updates []TimestampUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			res := tx.Model(&model.Task{}).
				Where("id = ? AND owner_id = ? AND version = ?", u.ID, ownerID, u.Version).
				Updates(map[string]interface{}{
					"start_time": u.StartTime,
					"version":    gorm.Expr("version + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrStaleReschedule
			}
		}
		return nil
	})
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
