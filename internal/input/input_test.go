package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSGRMouse(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		button MouseButton
		action MouseAction
		x, y   int
	}{
		{"left press", "\x1b[<0;10;5M", MouseBtnLeft, MouseActionPress, 9, 4},
		{"left drag", "\x1b[<32;11;5M", MouseBtnLeft, MouseActionDrag, 10, 4},
		{"left release", "\x1b[<0;11;5m", MouseBtnLeft, MouseActionRelease, 10, 4},
		{"right press", "\x1b[<2;1;1M", MouseBtnRight, MouseActionPress, 0, 0},
		{"wheel up", "\x1b[<64;3;3M", MouseBtnWheelUp, MouseActionPress, 2, 2},
		{"wheel down", "\x1b[<65;3;3M", MouseBtnWheelDown, MouseActionPress, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ev, complete := parseSGRMouse([]byte(tt.seq))
			require.True(t, complete)
			assert.Equal(t, len(tt.seq), n)
			assert.Equal(t, tt.button, ev.Button)
			assert.Equal(t, tt.action, ev.Action)
			assert.Equal(t, tt.x, ev.X)
			assert.Equal(t, tt.y, ev.Y)
		})
	}
}

func TestParseSGRMouseIncomplete(t *testing.T) {
	n, _, complete := parseSGRMouse([]byte("\x1b[<0;10"))
	assert.Equal(t, 0, n)
	assert.False(t, complete)
}

func TestParseKeysAndMouse(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	inp := parse(s, []byte("a\x1b[A+\x1b[<0;2;2Mq"), now)

	assert.True(t, inp.Left)
	assert.True(t, inp.Up)
	assert.True(t, inp.ZoomIn)
	assert.True(t, inp.Quit)
	assert.False(t, inp.Right)
	require.Len(t, inp.Mouse, 1)
	assert.Equal(t, MouseBtnLeft, inp.Mouse[0].Button)
}

func TestParseCarriesSplitSequence(t *testing.T) {
	s := &Stream{}
	now := time.Now()

	inp := parse(s, []byte("\x1b[<32;5"), now)
	assert.Empty(t, inp.Mouse)
	assert.NotEmpty(t, s.pending)

	buf := append(s.pending, []byte(";7M")...)
	s.pending = nil
	inp = parse(s, buf, now)
	require.Len(t, inp.Mouse, 1)
	assert.Equal(t, MouseActionDrag, inp.Mouse[0].Action)
	assert.Equal(t, 4, inp.Mouse[0].X)
	assert.Equal(t, 6, inp.Mouse[0].Y)
}

func TestKeyHoldExpires(t *testing.T) {
	s := &Stream{}
	start := time.Now()
	parse(s, []byte("d"), start)
	inp := parse(s, nil, start.Add(keyHoldDuration*2))
	assert.False(t, inp.Right)
}

func TestCtrlCQuits(t *testing.T) {
	s := &Stream{}
	inp := parse(s, []byte{0x03}, time.Now())
	assert.True(t, inp.Quit)
}
