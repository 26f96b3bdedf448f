package predict

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// stderrTail bounds how much of the engine's stderr is kept for diagnostics.
const stderrTail = 4 * 1024

// Runner executes an engine command and waits for it to exit.
// A non-zero exit must be reported as a *ProcessError; anything else
// (binary missing, spawn failure, cancellation) as a plain error.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ProcessError is returned when the engine ran but exited non-zero.
type ProcessError struct {
	Argv     []string
	ExitCode int
	Stderr   string // Last few KiB of stderr
	Err      error
}

func (e *ProcessError) Error() string {
	name := "engine"
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	return fmt.Sprintf("%s exited with status %d", name, e.ExitCode)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// IsCheckedFailure reports whether err is the engine's own failure signal
// (a non-zero exit) as opposed to an error running it at all.
func IsCheckedFailure(err error) bool {
	var pe *ProcessError
	return errors.As(err, &pe)
}

// ExecRunner runs the engine with os/exec.
type ExecRunner struct {
	Stdout io.Writer // Defaults to os.Stdout
	Stderr io.Writer // Defaults to os.Stderr
}

// NewExecRunner returns a runner that forwards the engine output to the terminal.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Executable, c.Args...)

	tail := &tailBuffer{max: stderrTail}
	cmd.Stdout = orDiscard(r.Stdout)
	cmd.Stderr = io.MultiWriter(orDiscard(r.Stderr), tail)

	err := cmd.Run()
	if err == nil {
		return nil
	}
	// A killed child also surfaces as ExitError; report the cancellation instead.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("engine interrupted: %w", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ProcessError{
			Argv:     c.Argv(),
			ExitCode: exitErr.ExitCode(),
			Stderr:   tail.String(),
			Err:      exitErr,
		}
	}
	return fmt.Errorf("run %s: %w", c.Executable, err)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// tailBuffer keeps only the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	max int
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
