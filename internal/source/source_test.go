package source

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	ctx := context.Background()
	s := NewLines("one", "two")
	assert.Equal(t, 2, s.Remaining())

	line, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	line, err = s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "two", line)

	_, err = s.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, s.Close())
}

func TestLines_CloseEndsStream(t *testing.T) {
	s := NewLines("one", "two")
	require.NoError(t, s.Close())

	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, s.Remaining())
}

func TestLines_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLines("one").Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatic(t *testing.T) {
	s := &Static{Lines: []string{"a"}, Value: "'prefer-dark'"}

	v, err := s.Query(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "'prefer-dark'", v)

	stream, err := s.Subscribe(context.Background())
	require.NoError(t, err)
	line, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", line)

	boom := errors.New("boom")
	s.Err = boom
	_, err = s.Query(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = s.Subscribe(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestNew(t *testing.T) {
	s, err := New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &GSettings{}, s)

	s, err = New("gsettings", nil)
	require.NoError(t, err)
	assert.IsType(t, &GSettings{}, s)

	s, err = New("portal", nil)
	require.NoError(t, err)
	assert.IsType(t, &Portal{}, s)

	_, err = New("kde", nil)
	assert.Error(t, err)
}
