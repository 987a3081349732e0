// Package model defines the core data structures for theme-sync.
package model

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// DarkMarker is the substring of a preference reading that selects Dark.
const DarkMarker = "prefer-dark"

// Preference is the normalized desktop theme preference.
// The zero value is Light.
type Preference int

// Preference values.
const (
	Light Preference = iota
	Dark
)

// String returns the lower-case variant name.
func (p Preference) String() string {
	if p == Dark {
		return "dark"
	}
	return "light"
}

// ParsePreference parses an explicit theme name such as "dark" or "Light".
func ParsePreference(s string) (Preference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("invalid theme %q: must be light or dark", s)
	}
}

// Normalize maps raw preference-source text to a Preference.
// Any text that does not contain DarkMarker, including empty or unknown
// values, is Light.
func Normalize(raw string) Preference {
	if strings.Contains(raw, DarkMarker) {
		return Dark
	}
	return Light
}

// Event is a single preference reading received from a source.
type Event struct {
	ID         string
	Raw        string
	Preference Preference
	ReceivedAt time.Time
}

// NewEvent normalizes raw and stamps it with a fresh ULID.
func NewEvent(raw string) (*Event, error) {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &Event{
		ID:         id.String(),
		Raw:        raw,
		Preference: Normalize(raw),
		ReceivedAt: now,
	}, nil
}
