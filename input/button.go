package input

import (
	"fmt"
	"math/bits"
	"strings"
)

// Button identifies a logical attack button
type Button uint8

const (
	ButtonNone Button = iota
	ButtonA           // Light
	ButtonB           // Medium
	ButtonC           // Heavy
	ButtonD           // Unique
)

// ButtonCount is the number of logical buttons tracked per sample
const ButtonCount = 4

// Slot returns the zero-based index of b in a ButtonSet
func (b Button) Slot() (int, error) {
	if b < ButtonA || b > ButtonD {
		return 0, fmt.Errorf("%w: %d", ErrInvalidButtonIdentity, b)
	}
	return int(b - ButtonA), nil
}

// Valid reports whether b is one of A-D
func (b Button) Valid() bool {
	return b >= ButtonA && b <= ButtonD
}

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonC:
		return "C"
	case ButtonD:
		return "D"
	case ButtonNone:
		return "none"
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// ParseButton accepts a-d or light/medium/heavy/unique, case-insensitive
func ParseButton(name string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a", "light":
		return ButtonA, nil
	case "b", "medium":
		return ButtonB, nil
	case "c", "heavy":
		return ButtonC, nil
	case "d", "unique":
		return ButtonD, nil
	}
	return ButtonNone, fmt.Errorf("%w: %q", ErrInvalidButtonIdentity, name)
}

// ButtonStatus is the per-frame edge/level state of one button
type ButtonStatus uint8

const (
	StatusUp      ButtonStatus = iota // Not pressed
	StatusDown                        // Pressed this frame
	StatusHold                        // Pressed on an earlier frame, still held
	StatusRelease                     // Released this frame
)

func (s ButtonStatus) String() string {
	switch s {
	case StatusUp:
		return "up"
	case StatusDown:
		return "down"
	case StatusHold:
		return "hold"
	case StatusRelease:
		return "release"
	}
	return "?"
}

// pressed reports Down or Hold
func (s ButtonStatus) pressed() bool {
	return s == StatusDown || s == StatusHold
}

// ButtonSet holds one status per button slot
type ButtonSet [ButtonCount]ButtonStatus

// Status returns the status of b, Up for invalid identities
func (s ButtonSet) Status(b Button) ButtonStatus {
	slot, err := b.Slot()
	if err != nil {
		return StatusUp
	}
	return s[slot]
}

// ButtonMask is a set of buttons packed into bits, bit n = slot n
type ButtonMask uint8

// MaskOf builds a mask from valid buttons, invalid identities are ignored
func MaskOf(buttons ...Button) ButtonMask {
	var m ButtonMask
	for _, b := range buttons {
		if slot, err := b.Slot(); err == nil {
			m |= 1 << slot
		}
	}
	return m
}

// Has reports whether b is in the mask
func (m ButtonMask) Has(b Button) bool {
	slot, err := b.Slot()
	if err != nil {
		return false
	}
	return m&(1<<slot) != 0
}

// Empty reports no buttons set
func (m ButtonMask) Empty() bool {
	return m == 0
}

// Count returns the number of buttons set
func (m ButtonMask) Count() int {
	return bits.OnesCount8(uint8(m))
}

// Buttons lists the set buttons in slot order
// Slot order carries no timing meaning; presses drained in one frame are simultaneous
func (m ButtonMask) Buttons() []Button {
	out := make([]Button, 0, ButtonCount)
	for slot := 0; slot < ButtonCount; slot++ {
		if m&(1<<slot) != 0 {
			out = append(out, ButtonA+Button(slot))
		}
	}
	return out
}

func (m ButtonMask) String() string {
	if m == 0 {
		return "-"
	}
	var sb strings.Builder
	for _, b := range m.Buttons() {
		sb.WriteString(b.String())
	}
	return sb.String()
}
