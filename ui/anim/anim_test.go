package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModel_Lifecycle(t *testing.T) {
	t.Parallel()

	m := New("loading")
	assert.Empty(t, m.View())

	cmd := m.Start()
	assert.NotNil(t, cmd)
	assert.Nil(t, m.Start(), "already spinning")
	assert.Contains(t, m.View(), "loading")

	m, cmd = m.Update(TickMsg{ID: m.id, gen: m.gen})
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.frame)

	m.Stop()
	m, cmd = m.Update(TickMsg{ID: m.id, gen: m.gen})
	assert.Nil(t, cmd)
	assert.Empty(t, m.View())
}

func TestModel_IgnoresForeignAndStaleTicks(t *testing.T) {
	t.Parallel()

	a, b := New("a"), New("b")
	a.Start()
	b.Start()

	a2, cmd := a.Update(TickMsg{ID: b.id, gen: b.gen})
	assert.Nil(t, cmd)
	assert.Zero(t, a2.frame)

	stale := TickMsg{ID: a.id, gen: a.gen}
	a.Stop()
	a.Start()
	a2, cmd = a.Update(stale)
	assert.Nil(t, cmd, "tick from before the restart")
	assert.Zero(t, a2.frame)
}

func TestModel_Ellipsis(t *testing.T) {
	t.Parallel()

	m := New("x")
	m.Start()
	m.frame = ellipsisFrames * 2
	assert.Contains(t, m.View(), "x..")
}
