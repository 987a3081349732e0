package apply

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"

	"github.com/jmylchreest/theme-sync/internal/model"
)

// Substitute replaces every literal occurrence of from with to in the file at
// path. The file is rewritten only when its content changes; changed reports
// whether a write happened. Symlinks are followed so the link survives the
// rename-based write.
func Substitute(path, from, to string) (changed bool, err error) {
	return substitute(slog.Default(), path, from, to)
}

func substitute(logger *slog.Logger, path, from, to string) (bool, error) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, model.NewError(model.KindFileRead, "resolve "+path, err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return false, model.NewError(model.KindFileRead, "read "+target, err)
	}
	if !utf8.Valid(data) {
		return false, model.NewError(model.KindUTF8Decode, "decode "+target, errors.New("content is not valid UTF-8"))
	}

	if from == "" || from == to {
		return false, nil
	}

	contents := string(data)
	replaced := strings.ReplaceAll(contents, from, to)
	if replaced == contents {
		return false, nil
	}

	logger.Debug("replacing token",
		"from", from,
		"to", to,
		"path", target,
		"count", strings.Count(contents, from),
		"size", humanize.Bytes(uint64(len(replaced))))

	if err := atomic.WriteFile(target, strings.NewReader(replaced)); err != nil {
		return false, model.NewError(model.KindFileWrite, "write "+target, err)
	}

	return true, nil
}
