package apply

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/theme-sync/internal/model"
)

func TestShellReloader_Success(t *testing.T) {
	r := NewShellReloader(nil)
	assert.Equal(t, DefaultShell, r.Shell)

	err := r.Reload(context.Background(), "true")
	assert.NoError(t, err)
}

func TestShellReloader_ShellSyntax(t *testing.T) {
	r := &ShellReloader{Shell: "sh"}

	err := r.Reload(context.Background(), "test 1 -eq 1 && exit 0")
	assert.NoError(t, err)
}

func TestShellReloader_NonZeroExit(t *testing.T) {
	r := &ShellReloader{Shell: "sh"}

	err := r.Reload(context.Background(), "exit 3")
	require.Error(t, err)
	assert.Equal(t, model.KindSubprocessExit, model.KindOf(err))
	assert.Contains(t, err.Error(), "status 3")
}

func TestShellReloader_SpawnFailure(t *testing.T) {
	r := &ShellReloader{Shell: "/nonexistent/shell"}

	err := r.Reload(context.Background(), "true")
	require.Error(t, err)
	assert.Equal(t, model.KindSubprocessSpawn, model.KindOf(err))
}
