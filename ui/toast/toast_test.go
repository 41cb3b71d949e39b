package toast

import (
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestModel_QueueAndExpire(t *testing.T) {
	t.Parallel()

	now := time.Unix(1000, 0)
	m := New()
	m.now = func() time.Time { return now }

	assert.NotNil(t, m.Add("one", Info))
	now = now.Add(time.Second)
	m.Add("two", Warning)
	m.Add("three", Error)
	m.Add("four", Info)
	assert.Equal(t, maxToasts, m.Len(), "oldest dropped")
	assert.NotContains(t, m.View(80), "one")

	now = now.Add(ttl - time.Millisecond)
	m.Expire()
	assert.Equal(t, 3, m.Len())

	now = now.Add(time.Millisecond)
	m.Expire()
	assert.Zero(t, m.Len())
	assert.Empty(t, m.View(80))
}

func TestModel_ViewRightAligned(t *testing.T) {
	t.Parallel()

	m := New()
	m.Add("link copied", Info)
	view := m.View(40)
	assert.Equal(t, 40, lipgloss.Width(view))
	assert.Contains(t, view, "link copied")
}
