package input

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionDrag
)

// MouseEvent is one decoded mouse report. X and Y are 0-based terminal cells.
type MouseEvent struct {
	Button MouseButton
	Action MouseAction
	X, Y   int
}

// parseSGRMouse parses a mouse SGR sequence: ESC [ < Btn ; X ; Y M/m.
// Returns the bytes consumed (0 if malformed) and whether the sequence was
// complete; an unterminated sequence should be retried with more data.
func parseSGRMouse(data []byte) (int, MouseEvent, bool) {
	end := 3
	for end < len(data) && end < 32 {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		return 0, MouseEvent{}, end >= 32
	}
	if data[end] != 'M' && data[end] != 'm' {
		return 0, MouseEvent{}, true
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return 0, MouseEvent{}, true
	}

	ev := MouseEvent{X: x - 1, Y: y - 1} // Convert to 0-indexed

	// Bits 0-1: button (0=left, 1=middle, 2=right, 3=release)
	// Bit 5 (32): motion
	// Bit 6 (64): scroll
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	if isScroll {
		if buttonID == 0 {
			ev.Button = MouseBtnWheelUp
		} else {
			ev.Button = MouseBtnWheelDown
		}
		ev.Action = MouseActionPress
		return end + 1, ev, true
	}

	switch buttonID {
	case 0:
		ev.Button = MouseBtnLeft
	case 1:
		ev.Button = MouseBtnMiddle
	case 2:
		ev.Button = MouseBtnRight
	}

	switch {
	case data[end] == 'm':
		ev.Action = MouseActionRelease
	case isMotion:
		ev.Action = MouseActionDrag
	default:
		ev.Action = MouseActionPress
	}

	return end + 1, ev, true
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y" format
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		if b == ';' {
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		} else if b >= '0' && b <= '9' {
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		} else {
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
