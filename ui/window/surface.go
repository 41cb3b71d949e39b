package window

import (
	"charm.land/bubbles/v2/viewport"
)

// Surface is the scrollable region a Controller renders into.
type Surface interface {
	ScrollTop() int
	ClientHeight() int
	ClientWidth() int
	SetScrollTop(n int)
	SetSize(width, height int)
	SetContent(lines []string)
	TotalLines() int

	// OnScroll and OnResize register listeners and return a func that
	// removes them.
	OnScroll(fn func()) (cancel func())
	OnResize(fn func()) (cancel func())
}

// Pane is a Surface backed by a bubbles viewport.
type Pane struct {
	vp     viewport.Model
	scroll listeners
	resize listeners
}

// NewPane returns an empty pane of the given size.
func NewPane(width, height int) *Pane {
	vp := viewport.New(viewport.WithWidth(width), viewport.WithHeight(height))
	vp.MouseWheelEnabled = false
	return &Pane{vp: vp}
}

func (p *Pane) ScrollTop() int    { return p.vp.YOffset() }
func (p *Pane) ClientHeight() int { return p.vp.Height() }
func (p *Pane) ClientWidth() int  { return p.vp.Width() }
func (p *Pane) TotalLines() int   { return p.vp.TotalLineCount() }

// SetScrollTop moves the viewport, clamped to the content, and notifies
// scroll listeners when the offset actually changed.
func (p *Pane) SetScrollTop(n int) {
	before := p.vp.YOffset()
	p.vp.SetYOffset(n)
	if p.vp.YOffset() != before {
		p.scroll.fire()
	}
}

// SetSize resizes the viewport and notifies resize listeners on change.
func (p *Pane) SetSize(width, height int) {
	if width == p.vp.Width() && height == p.vp.Height() {
		return
	}
	before := p.vp.YOffset()
	p.vp.SetWidth(width)
	p.vp.SetHeight(height)
	// Growing the viewport can pull the offset back inside the content.
	p.vp.SetYOffset(before)
	p.resize.fire()
	if p.vp.YOffset() != before {
		p.scroll.fire()
	}
}

// SetContent replaces the content. The scroll offset is kept unless the new
// content is too short for it.
func (p *Pane) SetContent(lines []string) {
	before := p.vp.YOffset()
	p.vp.SetContentLines(lines)
	if p.vp.YOffset() != before {
		p.scroll.fire()
	}
}

func (p *Pane) OnScroll(fn func()) func() { return p.scroll.add(fn) }
func (p *Pane) OnResize(fn func()) func() { return p.resize.add(fn) }

// View renders the visible slice of content.
func (p *Pane) View() string { return p.vp.View() }

// ---------------------------------------------------------------------------
// listeners
// ---------------------------------------------------------------------------

type listener struct {
	id int
	fn func()
}

// listeners is an ordered set of callbacks.
type listeners struct {
	next int
	list []listener
}

func (l *listeners) add(fn func()) func() {
	l.next++
	id := l.next
	l.list = append(l.list, listener{id: id, fn: fn})
	return func() {
		for i, ls := range l.list {
			if ls.id == id {
				l.list = append(l.list[:i], l.list[i+1:]...)
				return
			}
		}
	}
}

func (l *listeners) fire() {
	// Copy so a callback may unsubscribe itself.
	fns := make([]func(), len(l.list))
	for i, ls := range l.list {
		fns[i] = ls.fn
	}
	for _, fn := range fns {
		fn()
	}
}

func (l *listeners) len() int { return len(l.list) }
