// Package source reads the desktop-wide light/dark preference.
// It provides a gsettings subprocess backend, an XDG desktop portal backend
// over D-Bus, and an in-memory stream for tests.
package source
