package input

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDirectionFromStick(t *testing.T) {
	tests := []struct {
		up, down, back, forward bool
		want                    Direction
	}{
		{false, false, false, false, DirNeutral},
		{true, false, false, false, DirUp},
		{false, true, false, false, DirDown},
		{false, false, true, false, DirBack},
		{false, false, false, true, DirForward},
		{true, false, true, false, DirUpBack},
		{true, false, false, true, DirUpForward},
		{false, true, true, false, DirDownBack},
		{false, true, false, true, DirDownForward},
		{true, true, false, false, DirUp},
		{false, false, true, true, DirNeutral},
		{false, true, true, true, DirDown},
		{true, true, true, true, DirUp},
	}

	for _, tt := range tests {
		got := DirectionFromStick(tt.up, tt.down, tt.back, tt.forward)
		if got != tt.want {
			t.Errorf("DirectionFromStick(u=%v d=%v b=%v f=%v) = %v, want %v",
				tt.up, tt.down, tt.back, tt.forward, got, tt.want)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if DirNone.String() != "0" || DirDownForward.String() != "3" || DirUpForward.String() != "9" {
		t.Error("numpad names do not match layout")
	}
	if Direction(42).Valid() {
		t.Error("Direction(42).Valid() = true")
	}
}

func TestButtonSlot(t *testing.T) {
	for i, b := range []Button{ButtonA, ButtonB, ButtonC, ButtonD} {
		slot, err := b.Slot()
		if err != nil || slot != i {
			t.Errorf("%v.Slot() = %d, %v, want %d", b, slot, err, i)
		}
	}
	if _, err := ButtonNone.Slot(); !errors.Is(err, ErrInvalidButtonIdentity) {
		t.Errorf("ButtonNone.Slot() error = %v", err)
	}
}

func TestParseButton(t *testing.T) {
	tests := map[string]Button{"a": ButtonA, "Medium": ButtonB, " heavy ": ButtonC, "D": ButtonD}
	for name, want := range tests {
		got, err := ParseButton(name)
		if err != nil || got != want {
			t.Errorf("ParseButton(%q) = %v, %v, want %v", name, got, err, want)
		}
	}
	if _, err := ParseButton("e"); !errors.Is(err, ErrInvalidButtonIdentity) {
		t.Errorf("ParseButton(e) error = %v", err)
	}
}

func TestKeymapDefaults(t *testing.T) {
	km := DefaultKeymap()

	b, ok := km.Lookup(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone))
	if !ok || b.Control != ControlStick || b.Direction != DirDownForward {
		t.Errorf("'3' = %+v, %v, want stick 3", b, ok)
	}

	b, ok = km.Lookup(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	if !ok || b.Control != ControlButton || b.Button != ButtonA {
		t.Errorf("'u' = %+v, %v, want button A", b, ok)
	}

	b, ok = km.Lookup(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if !ok || b.Direction != DirBack {
		t.Errorf("Left = %+v, %v, want stick 4", b, ok)
	}

	if _, ok := km.Lookup(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)); ok {
		t.Error("unbound 'z' resolved")
	}
}

func TestLoadKeymapOverrides(t *testing.T) {
	km, err := LoadKeymap(map[string]string{"a": "j", "quit": "F10", "hit": "space"})
	if err != nil {
		t.Fatalf("LoadKeymap: %v", err)
	}

	if b, ok := km.Lookup(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)); !ok || b.Button != ButtonA {
		t.Errorf("'j' = %+v, %v, want button A", b, ok)
	}
	if b, ok := km.Lookup(tcell.NewEventKey(tcell.KeyF10, 0, tcell.ModNone)); !ok || b.Control != ControlQuit {
		t.Errorf("F10 = %+v, %v, want quit", b, ok)
	}
	if b, ok := km.Lookup(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)); !ok || b.Control != ControlHit {
		t.Errorf("space = %+v, %v, want hit", b, ok)
	}
}

func TestLoadKeymapErrors(t *testing.T) {
	if _, err := LoadKeymap(map[string]string{"teleport": "t"}); !errors.Is(err, ErrUnknownControl) {
		t.Errorf("unknown control error = %v", err)
	}
	if _, err := LoadKeymap(map[string]string{"a": "NotAKey"}); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("unknown key error = %v", err)
	}
}
