package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jmylchreest/theme-sync/internal/model"
)

// GNOME interface settings holding the color scheme.
const (
	GSettingsSchema = "org.gnome.desktop.interface"
	GSettingsKey    = "color-scheme"
)

// GSettings reads the preference by running gsettings.
type GSettings struct {
	Command     string
	MonitorArgs []string
	GetArgs     []string

	logger *slog.Logger
}

// NewGSettings creates a GSettings source with the standard arguments.
func NewGSettings(logger *slog.Logger) *GSettings {
	if logger == nil {
		logger = slog.Default()
	}
	return &GSettings{
		Command:     "gsettings",
		MonitorArgs: []string{"monitor", GSettingsSchema, GSettingsKey},
		GetArgs:     []string{"get", GSettingsSchema, GSettingsKey},
		logger:      logger,
	}
}

func (g *GSettings) log() *slog.Logger {
	if g.logger == nil {
		return slog.Default()
	}
	return g.logger
}

func (g *GSettings) describe(args []string) string {
	return strings.Join(append([]string{g.Command}, args...), " ")
}

// Query runs `gsettings get` once and returns its output.
func (g *GSettings) Query(ctx context.Context) (string, error) {
	name := g.describe(g.GetArgs)
	g.log().Debug("querying preference", "command", name)

	cmd := exec.CommandContext(ctx, g.Command, g.GetArgs...)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", model.NewError(model.KindSubprocessExit, name+" failed", err)
		}
		return "", model.NewError(model.KindSubprocessSpawn, "start "+name, err)
	}

	if !utf8.Valid(out) {
		return "", model.NewError(model.KindUTF8Decode, "decode "+name+" output", errors.New("output is not valid UTF-8"))
	}

	return string(out), nil
}

// Subscribe starts `gsettings monitor` and streams its stdout lines.
// The process is killed when ctx is cancelled.
func (g *GSettings) Subscribe(ctx context.Context) (Stream, error) {
	name := g.describe(g.MonitorArgs)

	cmd := exec.CommandContext(ctx, g.Command, g.MonitorArgs...)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, model.NewError(model.KindSubprocessSpawn, "capture "+name+" output", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, model.NewError(model.KindSubprocessSpawn, "start "+name, err)
	}

	g.log().Info("watching preference changes", "command", name, "pid", cmd.Process.Pid)

	return &processStream{
		name:    name,
		cmd:     cmd,
		scanner: bufio.NewScanner(stdout),
	}, nil
}

// processStream yields the stdout lines of a running command.
type processStream struct {
	name    string
	cmd     *exec.Cmd
	scanner *bufio.Scanner

	eof       bool
	closeOnce sync.Once
	closeErr  error
}

// Next returns the next output line, or io.EOF when the command closes stdout.
func (s *processStream) Next(ctx context.Context) (string, error) {
	if s.eof {
		return "", io.EOF
	}

	if !s.scanner.Scan() {
		s.eof = true
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading %s output: %w", s.name, err)
		}
		return "", io.EOF
	}

	line := s.scanner.Text()
	if !utf8.ValidString(line) {
		return "", model.NewError(model.KindUTF8Decode, "decode "+s.name+" output", errors.New("line is not valid UTF-8"))
	}
	return line, nil
}

// Close waits for the command to exit, killing it first if its output has
// not been read to the end. A non-zero exit is reported as KindSubprocessExit.
func (s *processStream) Close() error {
	s.closeOnce.Do(func() {
		if !s.eof && s.cmd.Process != nil {
			_ = s.cmd.Process.Kill()
		}

		if err := s.cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				s.closeErr = model.NewError(model.KindSubprocessExit, s.name+" exited", err)
				return
			}
			s.closeErr = fmt.Errorf("waiting for %s: %w", s.name, err)
		}
	})
	return s.closeErr
}
