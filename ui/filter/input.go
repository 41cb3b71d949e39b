package filter

import (
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/miosa/tunes/style"
)

var (
	accept = key.NewBinding(key.WithKeys("enter"))
	cancel = key.NewBinding(key.WithKeys("esc"))
)

// Input is the "/" query line shown above a filterable list.
type Input struct {
	ti textinput.Model
}

// NewInput returns a blurred, empty input.
func NewInput(placeholder string) Input {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	s := ti.Styles()
	s.Focused.Prompt = style.FilterPrompt
	s.Blurred.Prompt = style.Faint
	ti.SetStyles(s)
	return Input{ti: ti}
}

// Focus starts editing.
func (in *Input) Focus() tea.Cmd { return in.ti.Focus() }

// Focused reports whether keys go to the input.
func (in Input) Focused() bool { return in.ti.Focused() }

// Value returns the query.
func (in Input) Value() string { return in.ti.Value() }

// Active reports whether the input is being edited or holds a query.
func (in Input) Active() bool { return in.ti.Focused() || in.ti.Value() != "" }

// Clear empties and blurs the input.
func (in *Input) Clear() {
	in.ti.SetValue("")
	in.ti.Blur()
}

// SetWidth sets the editable width.
func (in *Input) SetWidth(w int) { in.ti.SetWidth(max(w-3, 1)) }

// Update edits the query. Enter keeps the query and stops editing; Esc
// clears it. changed reports whether the query text differs afterwards.
func (in *Input) Update(msg tea.Msg) (cmd tea.Cmd, changed bool) {
	before := in.ti.Value()
	if kp, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(kp, accept):
			in.ti.Blur()
			return nil, false
		case key.Matches(kp, cancel):
			in.Clear()
			return nil, before != ""
		}
	}
	in.ti, cmd = in.ti.Update(msg)
	return cmd, in.ti.Value() != before
}

// View renders the input line, or "" when there is nothing to show.
func (in Input) View() string {
	if !in.Active() {
		return ""
	}
	return in.ti.View()
}
