package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Control is what a terminal key does in the training harness
type Control uint8

const (
	ControlNone   Control = iota
	ControlStick          // Latch Binding.Direction
	ControlButton         // Press Binding.Button
	ControlFlip           // Character turned around
	ControlHit            // Simulated hit confirm (hit-stop)
	ControlReset          // Forced reset to neutral
	ControlLand           // Simulated landing
	ControlQuit
)

// Binding is the resolved meaning of one key
type Binding struct {
	Control   Control
	Direction Direction
	Button    Button
}

// controlRegistry maps config control names to bindings
var controlRegistry = map[string]Binding{
	"none":    {},
	"dir1":    {Control: ControlStick, Direction: DirDownBack},
	"dir2":    {Control: ControlStick, Direction: DirDown},
	"dir3":    {Control: ControlStick, Direction: DirDownForward},
	"dir4":    {Control: ControlStick, Direction: DirBack},
	"dir5":    {Control: ControlStick, Direction: DirNeutral},
	"dir6":    {Control: ControlStick, Direction: DirForward},
	"dir7":    {Control: ControlStick, Direction: DirUpBack},
	"dir8":    {Control: ControlStick, Direction: DirUp},
	"dir9":    {Control: ControlStick, Direction: DirUpForward},
	"up":      {Control: ControlStick, Direction: DirUp},
	"down":    {Control: ControlStick, Direction: DirDown},
	"back":    {Control: ControlStick, Direction: DirBack},
	"forward": {Control: ControlStick, Direction: DirForward},
	"a":       {Control: ControlButton, Button: ButtonA},
	"b":       {Control: ControlButton, Button: ButtonB},
	"c":       {Control: ControlButton, Button: ButtonC},
	"d":       {Control: ControlButton, Button: ButtonD},
	"flip":    {Control: ControlFlip},
	"hit":     {Control: ControlHit},
	"reset":   {Control: ControlReset},
	"land":    {Control: ControlLand},
	"quit":    {Control: ControlQuit},
}

// Keymap resolves terminal key events to bindings
type Keymap struct {
	Runes map[rune]Binding
	Keys  map[tcell.Key]Binding
}

// DefaultKeymap returns numpad-notation bindings: digits are stick positions
func DefaultKeymap() *Keymap {
	km := &Keymap{
		Runes: map[rune]Binding{
			'u': controlRegistry["a"],
			'i': controlRegistry["b"],
			'o': controlRegistry["c"],
			'p': controlRegistry["d"],
			'f': controlRegistry["flip"],
			'h': controlRegistry["hit"],
			'x': controlRegistry["reset"],
			'l': controlRegistry["land"],
			'q': controlRegistry["quit"],
		},
		Keys: map[tcell.Key]Binding{
			tcell.KeyUp:     controlRegistry["up"],
			tcell.KeyDown:   controlRegistry["down"],
			tcell.KeyLeft:   controlRegistry["back"],
			tcell.KeyRight:  controlRegistry["forward"],
			tcell.KeyEscape: controlRegistry["quit"],
			tcell.KeyCtrlC:  controlRegistry["quit"],
		},
	}
	for d := '1'; d <= '9'; d++ {
		km.Runes[d] = controlRegistry["dir"+string(d)]
	}
	return km
}

// LoadKeymap applies control = key overrides on top of the defaults
// Returns error on unknown control names or key names
func LoadKeymap(overrides map[string]string) (*Keymap, error) {
	km := DefaultKeymap()
	for control, keyName := range overrides {
		binding, ok := controlRegistry[strings.ToLower(control)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownControl, control)
		}
		if err := km.bind(keyName, binding); err != nil {
			return nil, fmt.Errorf("control %q: %w", control, err)
		}
	}
	return km, nil
}

// bind attaches binding to a single-rune key or a tcell key name
func (km *Keymap) bind(keyName string, binding Binding) error {
	if utf8.RuneCountInString(keyName) == 1 {
		r, _ := utf8.DecodeRuneInString(keyName)
		km.Runes[r] = binding
		return nil
	}
	switch strings.ToLower(keyName) {
	case "space":
		km.Runes[' '] = binding
		return nil
	case "backslash":
		km.Runes['\\'] = binding
		return nil
	}
	for k, name := range tcell.KeyNames {
		if strings.EqualFold(name, keyName) {
			km.Keys[k] = binding
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKey, keyName)
}

// Lookup resolves a key event
func (km *Keymap) Lookup(ev *tcell.EventKey) (Binding, bool) {
	if ev.Key() == tcell.KeyRune {
		b, ok := km.Runes[ev.Rune()]
		return b, ok && b.Control != ControlNone
	}
	b, ok := km.Keys[ev.Key()]
	return b, ok && b.Control != ControlNone
}
