package input

import "errors"

// Sentinel errors
var (
	// ErrInvalidButtonIdentity is returned when a button event does not name one of A-D
	// Indicates a mapping bug at the input boundary, never a player mistake
	ErrInvalidButtonIdentity = errors.New("invalid button identity")

	// ErrIndexOutOfRange is returned for history reads past capacity
	ErrIndexOutOfRange = errors.New("history index out of range")

	// ErrHistoryTooSmall is returned when capacity cannot hold a four-sample motion
	ErrHistoryTooSmall = errors.New("history size below minimum")

	// ErrUnknownControl is returned by keymap loading for unbound control names
	ErrUnknownControl = errors.New("unknown control")

	// ErrUnknownKey is returned by keymap loading for unparseable key names
	ErrUnknownKey = errors.New("unknown key name")
)
