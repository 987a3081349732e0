package config

import (
	"github.com/jmylchreest/theme-sync/internal/model"
)

// Environment variables consulted for the home directory, in order.
// SNAP_REAL_HOME points at the user's real home when running confined.
const (
	EnvSnapRealHome = "SNAP_REAL_HOME"
	EnvHome         = "HOME"
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// HomeDir resolves the home directory through lookup.
// Empty values are treated as unset.
func HomeDir(lookup LookupFunc) (string, error) {
	if lookup == nil {
		return "", model.NewError(model.KindEnvironmentMissing, "no environment available", nil)
	}
	for _, key := range []string{EnvSnapRealHome, EnvHome} {
		if v, ok := lookup(key); ok && v != "" {
			return v, nil
		}
	}
	return "", model.NewError(model.KindEnvironmentMissing, EnvSnapRealHome+" or "+EnvHome+" environment variable not set", nil)
}
