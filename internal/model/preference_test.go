package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Preference
	}{
		{"empty", "", Light},
		{"gsettings dark", "'prefer-dark'", Dark},
		{"gsettings light", "'prefer-light'", Light},
		{"gsettings default", "'default'", Light},
		{"monitor line", "color-scheme: 'prefer-dark'", Dark},
		{"embedded marker", "foo prefer-dark bar", Dark},
		{"unknown token", "prefer-sepia", Light},
		{"wrong case", "PREFER-DARK", Light},
		{"garbage", "\x00\x01", Light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestPreference_String(t *testing.T) {
	assert.Equal(t, "light", Light.String())
	assert.Equal(t, "dark", Dark.String())

	var zero Preference
	assert.Equal(t, Light, zero)
}

func TestParsePreference(t *testing.T) {
	p, err := ParsePreference("dark")
	require.NoError(t, err)
	assert.Equal(t, Dark, p)

	p, err = ParsePreference(" Light ")
	require.NoError(t, err)
	assert.Equal(t, Light, p)

	_, err = ParsePreference("sepia")
	assert.Error(t, err)
}

func TestNewEvent(t *testing.T) {
	e, err := NewEvent("color-scheme: 'prefer-dark'")
	require.NoError(t, err)

	assert.Len(t, e.ID, 26)
	assert.Equal(t, Dark, e.Preference)
	assert.Equal(t, "color-scheme: 'prefer-dark'", e.Raw)
	assert.False(t, e.ReceivedAt.IsZero())

	e2, err := NewEvent("")
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, e2.ID)
	assert.Equal(t, Light, e2.Preference)
}
