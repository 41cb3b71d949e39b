package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func testCopier(env map[string]string, native func(string) error) (*Copier, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Copier{
		native: native,
		tty:    func() (io.WriteCloser, error) { return nopCloser{&buf}, nil },
		getenv: func(k string) string { return env[k] },
	}, &buf
}

func TestCopy_PrefersNativeLocally(t *testing.T) {
	t.Parallel()

	var got string
	c, buf := testCopier(nil, func(s string) error { got = s; return nil })

	m, err := c.Copy("tunes://track/al0001/3")
	require.NoError(t, err)
	assert.Equal(t, Native, m)
	assert.Equal(t, "tunes://track/al0001/3", got)
	assert.Zero(t, buf.Len())
}

func TestCopy_FallsBackToTerminal(t *testing.T) {
	t.Parallel()

	c, buf := testCopier(nil, func(string) error { return errors.New("no xclip") })

	m, err := c.Copy("hello")
	require.NoError(t, err)
	assert.Equal(t, Terminal, m)
	assert.Contains(t, buf.String(), "]52;c;"+base64.StdEncoding.EncodeToString([]byte("hello")))
}

func TestCopy_SSHUsesTerminalFirst(t *testing.T) {
	t.Parallel()

	called := false
	c, buf := testCopier(map[string]string{"SSH_TTY": "/dev/pts/1"}, func(string) error { called = true; return nil })

	m, err := c.Copy("x")
	require.NoError(t, err)
	assert.Equal(t, Terminal, m)
	assert.False(t, called)
	assert.NotZero(t, buf.Len())
}

func TestCopy_TmuxPassthrough(t *testing.T) {
	t.Parallel()

	c, buf := testCopier(map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"}, nil)

	_, err := c.Copy("x")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\x1bPtmux;")
}

func TestCopy_NothingWorks(t *testing.T) {
	t.Parallel()

	c := &Copier{
		tty:    func() (io.WriteCloser, error) { return nil, errors.New("no tty") },
		getenv: func(string) string { return "" },
	}
	_, err := c.Copy("x")
	assert.ErrorContains(t, err, "no tty")
}
