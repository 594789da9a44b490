package loop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageStartsHidden(t *testing.T) {
	m := NewMessage(0.5, 10*time.Second)
	assert.False(t, m.Visible())
	assert.Equal(t, 0.0, m.Opacity())
	assert.Nil(t, m.pending)
}

func TestMessageShowsWhenLookingDown(t *testing.T) {
	t0 := time.Unix(1000, 0)
	m := NewMessage(0.5, 10*time.Second)

	m.Evaluate(0.3, t0)
	require.True(t, m.Visible())
	assert.Equal(t, 1.0, m.Opacity())
	first := m.pending
	require.NotNil(t, first)
	assert.Equal(t, t0.Add(10*time.Second), first.deadline)

	m.Evaluate(0.3, t0.Add(5*time.Second))
	assert.True(t, m.Visible())
	second := m.pending
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.True(t, first.cancelled, "restarting replaces the pending countdown")
	assert.Equal(t, t0.Add(15*time.Second), second.deadline)

	m.Evaluate(0.8, t0.Add(6*time.Second))
	assert.False(t, m.Visible())
	assert.Nil(t, m.pending)
	assert.True(t, second.cancelled)
}

func TestMessageThresholdIsExclusive(t *testing.T) {
	m := NewMessage(0.5, 10*time.Second)
	m.Evaluate(0.5, time.Unix(0, 0))
	assert.False(t, m.Visible())
	assert.Nil(t, m.pending)
}

func TestMessageCountdownExpires(t *testing.T) {
	t0 := time.Unix(1000, 0)
	m := NewMessage(0.5, 10*time.Second)

	m.Evaluate(0.3, t0)
	expired := m.pending

	m.Evaluate(0.3, t0.Add(11*time.Second))
	assert.True(t, m.Visible(), "still looking down, so the message is shown again")
	assert.False(t, expired.cancelled, "a countdown that fired was not cancelled")
	require.NotNil(t, m.pending)
	assert.Equal(t, t0.Add(21*time.Second), m.pending.deadline)
}

func TestMessageHiddenWhileLookingUp(t *testing.T) {
	m := NewMessage(0.5, 10*time.Second)
	now := time.Unix(0, 0)
	for i := 0; i < 10; i++ {
		m.Evaluate(1.2, now.Add(time.Duration(i)*time.Second))
		assert.False(t, m.Visible())
		assert.Nil(t, m.pending)
	}
}
