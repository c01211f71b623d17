package rescheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os/exec"
	"time"

	"github.com/google/uuid"

	apperrors "mood-planner.com/mood-planner/internal/errors"
	model "mood-planner.com/mood-planner/internal/models"
	"mood-planner.com/mood-planner/internal/schedule"
)

// ScriptRunner shells out to the configured rescheduler command, writing
// the request JSON to its stdin and reading the replacement schedule
// from its stdout. Diagnostic output on stderr is captured separately
// and never fed into the result.
type ScriptRunner struct {
	command []string
	timeout time.Duration
}

func NewScriptRunner(command []string, timeout time.Duration) *ScriptRunner {
	return &ScriptRunner{
		command: command,
		timeout: timeout,
	}
}

type placementEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
}

func (r *ScriptRunner) Run(ctx context.Context, req *schedule.Request) ([]Placement, error) {
	jobID := uuid.NewString()

	payload, err := json.Marshal(req)
	if err != nil {
		log.Printf("reschedule %s: encode request: %v", jobID, err)
		return nil, apperrors.ErrRescheduleFailed
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Printf("reschedule %s: running %v for %s (%d movable, %d blocked)",
		jobID, r.command, req.Date, len(req.Tasks), len(req.BlockedSlots))

	if err := cmd.Run(); err != nil {
		log.Printf("reschedule %s: process failed: %v (stderr: %s)", jobID, err, stderr.String())
		return nil, apperrors.ErrRescheduleFailed
	}
	if stderr.Len() > 0 {
		log.Printf("reschedule %s: process wrote diagnostics: %s", jobID, stderr.String())
		return nil, apperrors.ErrRescheduleFailed
	}

	placements, err := ParseOutput(stdout.Bytes())
	if err != nil {
		log.Printf("reschedule %s: unparsable output: %v", jobID, err)
		return nil, apperrors.ErrRescheduleFailed
	}

	log.Printf("reschedule %s: got %d placements", jobID, len(placements))
	return placements, nil
}

// ParseOutput validates the raw stdout of the rescheduler into typed
// placements. This is the only place the process output is inspected.
func ParseOutput(out []byte) ([]Placement, error) {
	var entries []placementEntry
	if err := json.Unmarshal(bytes.TrimSpace(out), &entries); err != nil {
		return nil, err
	}

	placements := make([]Placement, 0, len(entries))
	for _, e := range entries {
		ts, err := model.ParseTimestamp(e.Timestamp)
		if err != nil {
			return nil, err
		}
		placements = append(placements, Placement{ID: e.ID, StartTime: ts})
	}

	return placements, nil
}
