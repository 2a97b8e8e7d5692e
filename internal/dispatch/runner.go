package dispatch

import (
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/google/uuid"
)

// Runner spawns external processes for command keys and actions.
type Runner interface {
	// Run starts cmd with args and returns without waiting for it.
	Run(cmd string, args []string) error
}

// ExecRunner runs commands detached through os/exec. Each spawn gets
// an id so its exit can be matched to its start in the logs; the
// dispatcher never waits on it.
type ExecRunner struct {
	log *slog.Logger
}

// NewExecRunner creates a runner logging through log.
func NewExecRunner(log *slog.Logger) *ExecRunner {
	if log == nil {
		log = slog.Default()
	}
	return &ExecRunner{log: log}
}

// Run starts the command and reaps it in the background.
func (r *ExecRunner) Run(cmd string, args []string) error {
	c := exec.Command(cmd, args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("starting %q: %w", cmd, err)
	}

	id := uuid.New().String()
	r.log.Debug("command started", "id", id, "cmd", cmd, "pid", c.Process.Pid)

	go func() {
		if err := c.Wait(); err != nil {
			r.log.Debug("command exited", "id", id, "error", err)
			return
		}
		r.log.Debug("command exited", "id", id)
	}()
	return nil
}
