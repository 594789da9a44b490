package loop

import "time"

// countdown is a pending hide of the birthday message.
type countdown struct {
	deadline  time.Time
	cancelled bool // Replaced or stopped before firing
}

// Message tracks the visibility of the birthday message. It is shown while
// the camera looks down on the scene and hidden again a fixed time after
// the last such frame, or as soon as the camera looks up.
type Message struct {
	HideAfter time.Duration
	Threshold float64 // Polar angle below which the message shows

	visible bool
	pending *countdown // At most one pending countdown
}

// NewMessage creates a hidden message.
func NewMessage(threshold float64, hideAfter time.Duration) *Message {
	return &Message{Threshold: threshold, HideAfter: hideAfter}
}

// Evaluate updates visibility for a frame whose camera polar angle is polar.
// A countdown that has run out by now fires first.
func (m *Message) Evaluate(polar float64, now time.Time) {
	if m.pending != nil && !now.Before(m.pending.deadline) {
		m.visible = false
		m.pending = nil
	}

	if polar < m.Threshold {
		m.visible = true
		m.cancel()
		m.pending = &countdown{deadline: now.Add(m.HideAfter)}
		return
	}

	m.visible = false
	m.cancel()
}

func (m *Message) cancel() {
	if m.pending != nil {
		m.pending.cancelled = true
		m.pending = nil
	}
}

// Visible reports whether the message is shown.
func (m *Message) Visible() bool {
	return m.visible
}

// Opacity is 1 while visible and 0 otherwise.
func (m *Message) Opacity() float64 {
	if m.visible {
		return 1
	}
	return 0
}
