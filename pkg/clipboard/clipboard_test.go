package clipboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy_Empty(t *testing.T) {
	called := false
	c := New(WriterFunc(func(string) error {
		called = true
		return nil
	}))

	assert.ErrorIs(t, c.Copy(""), ErrNothingToCopy)
	assert.False(t, called)
}

func TestCopy_PrimarySucceeds(t *testing.T) {
	var got []string
	primary := WriterFunc(func(s string) error {
		got = append(got, "primary:"+s)
		return nil
	})
	fallback := WriterFunc(func(s string) error {
		got = append(got, "fallback:"+s)
		return nil
	})

	require.NoError(t, New(primary, fallback).Copy("hunter2!"))
	assert.Equal(t, []string{"primary:hunter2!"}, got)
}

func TestCopy_FallsBack(t *testing.T) {
	var buf bytes.Buffer
	primary := WriterFunc(func(string) error { return errors.New("no clipboard") })

	require.NoError(t, New(primary, OSC52{Out: &buf}).Copy("secret"))
	assert.Contains(t, buf.String(), "\x1b]52;c;")
	// base64("secret")
	assert.Contains(t, buf.String(), "c2VjcmV0")
}

func TestCopy_AllFail(t *testing.T) {
	primary := WriterFunc(func(string) error { return errors.New("no clipboard") })

	err := New(primary, OSC52{}).Copy("secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCopyFailed)
	assert.Contains(t, err.Error(), FailureMessage)
	assert.Contains(t, err.Error(), "no clipboard")
}

func TestCopy_NoWriters(t *testing.T) {
	assert.ErrorIs(t, New().Copy("secret"), ErrCopyFailed)
}
