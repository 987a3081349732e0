// Package apply switches application configuration files between their
// light and dark variants. It performs literal token substitution on each
// target file, writing only when the content changes, and optionally runs
// a per-application reload command afterwards.
package apply
