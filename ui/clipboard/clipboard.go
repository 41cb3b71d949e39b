// Package clipboard copies share links to the system clipboard, natively
// when a clipboard tool is available and through the terminal (OSC 52)
// otherwise, which also works over SSH.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method names how text reached the clipboard.
type Method string

const (
	Native   Method = "native"
	Terminal Method = "osc52"
)

// Copier copies text. The zero value is not usable; call New.
type Copier struct {
	// native writes to the OS clipboard. nil when unsupported.
	native func(string) error
	// tty opens the terminal OSC 52 sequences are written to.
	tty    func() (io.WriteCloser, error)
	getenv func(string) string
}

// New returns a Copier for the current process.
func New() *Copier {
	c := &Copier{tty: openTTY, getenv: os.Getenv}
	if !clipboard.Unsupported {
		c.native = clipboard.WriteAll
	}
	return c
}

func openTTY() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// Copy places text on the clipboard and reports the method that worked.
// Over SSH the terminal route is tried first, since a native clipboard
// there belongs to the remote machine.
func (c *Copier) Copy(text string) (Method, error) {
	remote := c.getenv("SSH_TTY") != "" || c.getenv("SSH_CONNECTION") != ""
	if c.native != nil && !remote {
		if err := c.native(text); err == nil {
			return Native, nil
		}
	}
	if err := c.copyOSC52(text); err != nil {
		if c.native != nil && remote {
			if nerr := c.native(text); nerr == nil {
				return Native, nil
			}
		}
		return "", fmt.Errorf("clipboard: %w", err)
	}
	return Terminal, nil
}

func (c *Copier) copyOSC52(text string) error {
	w, err := c.tty()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer w.Close()

	if _, err := c.sequence(text).WriteTo(w); err != nil {
		return fmt.Errorf("write osc52: %w", err)
	}
	return nil
}

// sequence wraps the OSC 52 escape for tmux or screen when running inside
// one, so the multiplexer passes it through to the outer terminal.
func (c *Copier) sequence(text string) osc52.Sequence {
	seq := osc52.New(text)
	switch {
	case c.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	return seq
}
