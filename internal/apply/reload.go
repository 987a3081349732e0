package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/jmylchreest/theme-sync/internal/model"
)

// DefaultShell interprets reload commands.
const DefaultShell = "bash"

// Reloader asks an application to re-read its configuration.
type Reloader interface {
	Reload(ctx context.Context, command string) error
}

// ShellReloader runs reload commands as `<Shell> -c <command>` with the
// process's standard streams.
type ShellReloader struct {
	Shell  string
	Logger *slog.Logger
}

// NewShellReloader creates a ShellReloader using DefaultShell.
func NewShellReloader(logger *slog.Logger) *ShellReloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShellReloader{
		Shell:  DefaultShell,
		Logger: logger,
	}
}

// Reload runs command and waits for it to finish.
func (r *ShellReloader) Reload(ctx context.Context, command string) error {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("running command", "command", command)

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return model.NewError(model.KindSubprocessExit,
				fmt.Sprintf("command `%s` exited with status %d", command, exitErr.ExitCode()), err)
		}
		return model.NewError(model.KindSubprocessSpawn, fmt.Sprintf("command `%s`", command), err)
	}

	return nil
}
