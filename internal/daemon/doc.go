// Package daemon runs theme-sync's monitor mode.
// It subscribes to a preference source and applies each reading to the
// configured applications, one event at a time.
package daemon
