package apply

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/theme-sync/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSubstitute_ReplacesAllOccurrences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.conf")
	writeFile(t, path, "fg=light-theme\nbg=light-theme\nother=light\n")

	changed, err := Substitute(path, "light-theme", "dark-theme")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "fg=dark-theme\nbg=dark-theme\nother=light\n", readFile(t, path))
}

func TestSubstitute_LiteralMatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.css")
	writeFile(t, path, "a.b a*b A.B")

	changed, err := Substitute(path, "a.b", "x")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "x a*b A.B", readFile(t, path))
}

func TestSubstitute_NonOverlapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "aaaa")

	_, err := Substitute(path, "aa", "b")
	require.NoError(t, err)
	assert.Equal(t, "bb", readFile(t, path))
}

func TestSubstitute_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kitty.conf")
	writeFile(t, path, "include light-theme.conf\n")

	changed, err := Substitute(path, "light-theme", "dark-theme")
	require.NoError(t, err)
	assert.True(t, changed)
	first := readFile(t, path)

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	changed, err = Substitute(path, "light-theme", "dark-theme")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first, readFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(past), "second call must not write")
}

func TestSubstitute_EmptyOrEqualTokensAreNoOps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "same")

	changed, err := Substitute(path, "", "x")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = Substitute(path, "same", "same")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "same", readFile(t, path))
}

func TestSubstitute_MissingFile(t *testing.T) {
	_, err := Substitute(filepath.Join(t.TempDir(), "missing"), "a", "b")
	require.Error(t, err)
	assert.Equal(t, model.KindFileRead, model.KindOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSubstitute_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "binary")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 'a'}, 0644))

	_, err := Substitute(path, "a", "b")
	require.Error(t, err)
	assert.Equal(t, model.KindUTF8Decode, model.KindOf(err))
}

func TestSubstitute_PreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.conf")
	require.NoError(t, os.WriteFile(path, []byte("light"), 0600))

	_, err := Substitute(path, "light", "dark")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSubstitute_FollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	realFile := filepath.Join(dir, "dotfiles", "foot.ini")
	writeFile(t, realFile, "include=light.ini")

	link := filepath.Join(dir, "foot.ini")
	require.NoError(t, os.Symlink(realFile, link))

	changed, err := Substitute(link, "light.ini", "dark.ini")
	require.NoError(t, err)
	assert.True(t, changed)

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link must survive")
	assert.Equal(t, "include=dark.ini", readFile(t, realFile))
}
