package sys

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
)

// Capture selects which output stream of a child process becomes the command's value.
type Capture string

const (
	CaptureStderr   Capture = "stderr"
	CaptureStdout   Capture = "stdout"
	CaptureCombined Capture = "combined"
)

func ParseCapture(s string) (Capture, error) {
	switch c := Capture(strings.ToLower(strings.TrimSpace(s))); c {
	case CaptureStderr, CaptureStdout, CaptureCombined:
		return c, nil
	case "":
		return CaptureCombined, nil
	default:
		return "", fmt.Errorf("unknown capture mode %q (want stderr, stdout or combined)", s)
	}
}

// Runner launches an external program and returns its captured output.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (string, error)
}

// ExecRunner runs programs found on PATH. The stream that is not captured is
// copied to Stdout or Stderr when those are set, and discarded otherwise.
type ExecRunner struct {
	Capture Capture
	Dir     string
	Env     []string
	Stdout  io.Writer
	Stderr  io.Writer
}

func (r *ExecRunner) Run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = r.Env
	}

	var out bytes.Buffer
	switch r.Capture {
	case CaptureStderr:
		cmd.Stdout = r.Stdout
		cmd.Stderr = &out
	case CaptureStdout:
		cmd.Stdout = &out
		cmd.Stderr = r.Stderr
	default:
		cmd.Stdout = &out
		cmd.Stderr = &out
	}

	slog.Debug("running command",
		slog.String("name", name),
		slog.Any("args", args),
		slog.String("capture", string(r.Capture)),
	)

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", fmt.Errorf("%s: %w", name, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", fmt.Errorf("failed to launch %s: %w", name, err)
		}
		slog.Debug("command exited with non-zero status",
			slog.String("name", name),
			slog.Int("exit-code", exitErr.ExitCode()),
		)
	}

	return strings.TrimSuffix(out.String(), "\n"), nil
}
