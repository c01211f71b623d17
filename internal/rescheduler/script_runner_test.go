package rescheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "mood-planner.com/mood-planner/internal/errors"
	model "mood-planner.com/mood-planner/internal/models"
	"mood-planner.com/mood-planner/internal/schedule"
)

func testRequest() *schedule.Request {
	return &schedule.Request{
		Date:        "2024-01-01",
		CurrentMood: "Focused",
		Tasks: []schedule.MovableTask{
			{ID: 1, Title: "write report", Moods: model.MoodList{"Focused"}, DurationMinutes: 60},
		},
	}
}

func shellRunner(script string) *ScriptRunner {
	return NewScriptRunner([]string{"sh", "-c", script}, 10*time.Second)
}

func TestScriptRunnerSuccess(t *testing.T) {
	runner := shellRunner(`cat >/dev/null; echo '[{"id":1,"timestamp":"2024-01-01T10:00:00"}]'`)

	placements, err := runner.Run(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placements))
	}
	want, _ := model.ParseTimestamp("2024-01-01T10:00:00")
	if placements[0].ID != 1 || !placements[0].StartTime.Equal(want) {
		t.Errorf("unexpected placement %+v", placements[0])
	}
}

func TestScriptRunnerNonZeroExit(t *testing.T) {
	runner := shellRunner(`cat >/dev/null; exit 1`)

	_, err := runner.Run(context.Background(), testRequest())
	if !errors.Is(err, apperrors.ErrRescheduleFailed) {
		t.Fatalf("expected ErrRescheduleFailed, got %v", err)
	}
}

func TestScriptRunnerStderrFails(t *testing.T) {
	runner := shellRunner(`cat >/dev/null; echo '[]'; echo 'model unavailable' >&2`)

	_, err := runner.Run(context.Background(), testRequest())
	if !errors.Is(err, apperrors.ErrRescheduleFailed) {
		t.Fatalf("diagnostic output must fail the run, got %v", err)
	}
}

func TestScriptRunnerGarbageOutput(t *testing.T) {
	runner := shellRunner(`cat >/dev/null; echo 'here is your schedule:'`)

	_, err := runner.Run(context.Background(), testRequest())
	if !errors.Is(err, apperrors.ErrRescheduleFailed) {
		t.Fatalf("unparsable output must fail the run, got %v", err)
	}
}

func TestScriptRunnerTimeout(t *testing.T) {
	runner := NewScriptRunner([]string{"sh", "-c", "sleep 5"}, 100*time.Millisecond)

	_, err := runner.Run(context.Background(), testRequest())
	if !errors.Is(err, apperrors.ErrRescheduleFailed) {
		t.Fatalf("timeout must surface as ErrRescheduleFailed, got %v", err)
	}
}

func TestParseOutputBadTimestamp(t *testing.T) {
	_, err := ParseOutput([]byte(`[{"id":1,"timestamp":"tomorrow-ish"}]`))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseOutputZonelessTimestamp(t *testing.T) {
	placements, err := ParseOutput([]byte(`[{"id":7,"timestamp":"2025-06-11T09:30:00"}]`))
	if err != nil {
		t.Fatalf("ParseOutput: %v", err)
	}
	if placements[0].StartTime.Hour() != 9 || placements[0].StartTime.Minute() != 30 {
		t.Errorf("unexpected time %v", placements[0].StartTime)
	}
}
