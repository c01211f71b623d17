package services

import (
	"context"
	"errors"
	"testing"

	apperrors "mood-planner.com/mood-planner/internal/errors"
	model "mood-planner.com/mood-planner/internal/models"
	repository "mood-planner.com/mood-planner/internal/repositories"
	"mood-planner.com/mood-planner/internal/rescheduler"
	"mood-planner.com/mood-planner/internal/schedule"
)

func rescheduleFixture(t *testing.T, runner *mockRunner) (*RescheduleService, *repository.TaskRepository) {
	repo := repository.NewTaskRepository(setupTestDB(t))
	return NewRescheduleService(repo, runner), repo
}

// editDuringRunRunner mutates the store mid-run before delegating, to
// race a manual edit against an in-flight reschedule.
type editDuringRunRunner struct {
	inner *mockRunner
	edit  func()
}

func (r *editDuringRunRunner) Run(ctx context.Context, req *schedule.Request) ([]rescheduler.Placement, error) {
	r.edit()
	return r.inner.Run(ctx, req)
}

func seed(t *testing.T, repo *repository.TaskRepository, task model.Task) *model.Task {
	t.Helper()
	if task.Title == "" {
		task.Title = "task"
	}
	if len(task.Moods) == 0 {
		task.Moods = model.MoodList{"Focused"}
	}
	if err := repo.Create(context.Background(), &task); err != nil {
		t.Fatal(err)
	}
	return &task
}

func TestRescheduleAppliesPlacements(t *testing.T) {
	runner := &mockRunner{}
	service, repo := rescheduleFixture(t, runner)
	ctx := context.Background()

	locked := seed(t, repo, model.Task{OwnerID: 1, StartTime: mustTime(t, "2024-01-01T09:00"), DurationMinutes: 30, Locked: true})
	movable := seed(t, repo, model.Task{OwnerID: 1, StartTime: mustTime(t, "2024-01-01T11:00"), DurationMinutes: 60})

	runner.placements = []rescheduler.Placement{
		{ID: movable.ID, StartTime: mustTime(t, "2024-01-01T14:00")},
	}

	moved, err := service.Reschedule(ctx, 1, "2024-01-01", "Focused")
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if moved != 1 {
		t.Errorf("expected 1 moved task, got %d", moved)
	}

	got, _ := repo.FindByID(ctx, 1, movable.ID)
	if !got.StartTime.Equal(mustTime(t, "2024-01-01T14:00")) {
		t.Errorf("placement not applied: %v", got.StartTime)
	}

	// the request must have partitioned correctly
	if len(runner.lastReq.BlockedSlots) != 1 || len(runner.lastReq.Tasks) != 1 {
		t.Errorf("bad partition: %d blocked, %d movable",
			len(runner.lastReq.BlockedSlots), len(runner.lastReq.Tasks))
	}
	if !runner.lastReq.BlockedSlots[0].Start.Equal(locked.StartTime) {
		t.Error("blocked slot must come from the locked task")
	}
}

func TestRescheduleRunnerFailureLeavesStoreUntouched(t *testing.T) {
	runner := &mockRunner{err: apperrors.ErrRescheduleFailed}
	service, repo := rescheduleFixture(t, runner)
	ctx := context.Background()

	task := seed(t, repo, model.Task{OwnerID: 1, StartTime: mustTime(t, "2024-01-01T11:00"), DurationMinutes: 60})

	_, err := service.Reschedule(ctx, 1, "2024-01-01", "Tired")
	if !errors.Is(err, apperrors.ErrRescheduleFailed) {
		t.Fatalf("expected ErrRescheduleFailed, got %v", err)
	}

	got, _ := repo.FindByID(ctx, 1, task.ID)
	if !got.StartTime.Equal(task.StartTime) || got.Version != task.Version {
		t.Error("failed reschedule must not write to the store")
	}
}

func TestRescheduleEchoBackWritesNothing(t *testing.T) {
	runner := &mockRunner{}
	service, repo := rescheduleFixture(t, runner)
	ctx := context.Background()

	task := seed(t, repo, model.Task{OwnerID: 1, StartTime: mustTime(t, "2024-01-01T11:00"), DurationMinutes: 60})
	runner.placements = []rescheduler.Placement{
		{ID: task.ID, StartTime: task.StartTime},
	}

	moved, err := service.Reschedule(ctx, 1, "2024-01-01", "Calm")
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if moved != 0 {
		t.Errorf("echoed-back schedule must be a no-op, moved %d", moved)
	}

	got, _ := repo.FindByID(ctx, 1, task.ID)
	if got.Version != task.Version {
		t.Error("no-op reschedule must not bump versions")
	}
}

func TestRescheduleUnknownIDFailsBatch(t *testing.T) {
	runner := &mockRunner{}
	service, repo := rescheduleFixture(t, runner)
	ctx := context.Background()

	task := seed(t, repo, model.Task{OwnerID: 1, StartTime: mustTime(t, "2024-01-01T11:00"), DurationMinutes: 60})
	runner.placements = []rescheduler.Placement{
		{ID: task.ID, StartTime: mustTime(t, "2024-01-01T15:00")},
		{ID: 999, StartTime: mustTime(t, "2024-01-01T16:00")},
	}

	_, err := service.Reschedule(ctx, 1, "2024-01-01", "Calm")
	if !errors.Is(err, apperrors.ErrRescheduleFailed) {
		t.Fatalf("expected ErrRescheduleFailed, got %v", err)
	}

	got, _ := repo.FindByID(ctx, 1, task.ID)
	if !got.StartTime.Equal(task.StartTime) {
		t.Error("batch with an unknown id must not be applied at all")
	}
}

func TestRescheduleStaleVersionRejected(t *testing.T) {
	runner := &mockRunner{}
	service, repo := rescheduleFixture(t, runner)
	ctx := context.Background()

	task := seed(t, repo, model.Task{OwnerID: 1, StartTime: mustTime(t, "2024-01-01T11:00"), DurationMinutes: 60})
	runner.placements = []rescheduler.Placement{
		{ID: task.ID, StartTime: mustTime(t, "2024-01-01T15:00")},
	}

	// a manual edit lands while the rescheduler run is in flight: the
	// request snapshots the old version, then the task moves under it
	manualStart := mustTime(t, "2024-01-01T12:00")
	staleRunner := &editDuringRunRunner{
		inner: runner,
		edit: func() {
			edited, err := repo.FindByID(ctx, 1, task.ID)
			if err != nil {
				t.Fatal(err)
			}
			edited.StartTime = manualStart
			if err := repo.Update(ctx, edited); err != nil {
				t.Fatal(err)
			}
		},
	}
	service = NewRescheduleService(repo, staleRunner)

	_, err := service.Reschedule(ctx, 1, "2024-01-01", "Calm")
	if !errors.Is(err, apperrors.ErrStaleReschedule) {
		t.Fatalf("expected ErrStaleReschedule, got %v", err)
	}

	got, _ := repo.FindByID(ctx, 1, task.ID)
	if !got.StartTime.Equal(manualStart) {
		t.Error("the manual edit must win; the stale result must not overwrite it")
	}
}

func TestRescheduleNoMovableTasks(t *testing.T) {
	runner := &mockRunner{}
	service, repo := rescheduleFixture(t, runner)
	ctx := context.Background()

	seed(t, repo, model.Task{OwnerID: 1, StartTime: mustTime(t, "2024-01-01T09:00"), DurationMinutes: 30, Locked: true})

	_, err := service.Reschedule(ctx, 1, "2024-01-01", "Focused")
	if !errors.Is(err, apperrors.ErrNoMovableTasks) {
		t.Fatalf("expected ErrNoMovableTasks, got %v", err)
	}
	if runner.lastReq != nil {
		t.Error("no process may be invoked when nothing is movable")
	}
}

func TestRescheduleBadDate(t *testing.T) {
	runner := &mockRunner{}
	service, _ := rescheduleFixture(t, runner)

	_, err := service.Reschedule(context.Background(), 1, "01/02/2024", "Calm")
	if apperrors.StatusCode(err) != 400 {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
