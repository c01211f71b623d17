package rescheduler

import (
	"context"
	"time"

	"mood-planner.com/mood-planner/internal/schedule"
)

// Placement is one replacement entry emitted by the external
// rescheduler: a task id and its new start time.
type Placement struct {
	ID        int64
	StartTime time.Time
}

// Runner invokes the external rescheduling process. Implementations
// never touch the task store; applying the result is the caller's job.
type Runner interface {
	Run(ctx context.Context, req *schedule.Request) ([]Placement, error)
}
