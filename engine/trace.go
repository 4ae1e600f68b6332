package engine

import (
	"strings"

	"github.com/tidwall/sjson"

	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/input"
)

// FrameState is the published result of one Step
type FrameState struct {
	Frame     uint64
	Direction input.Direction
	Buttons   input.ButtonSet
	Combat    combat.Snapshot
	Decision  Decision
	Resumed   bool // Hit-stop ended at the start of this frame
}

// EncodeFrame renders fs as one JSON object for the trace log
// Buttons in StatusUp and an empty decision are omitted
func EncodeFrame(fs FrameState) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, v)
	}

	set("frame", fs.Frame)
	set("dir", fs.Direction.String())
	for slot := 0; slot < input.ButtonCount; slot++ {
		b := input.ButtonA + input.Button(slot)
		if st := fs.Buttons.Status(b); st != input.StatusUp {
			set("buttons."+strings.ToLower(b.String()), st.String())
		}
	}
	set("state", fs.Combat.State.String())
	set("attack", string(fs.Combat.Attack))
	set("pending", fs.Combat.Pending.String())
	set("frozen", fs.Combat.Frozen)
	set("frames_into_attack", fs.Combat.FramesIntoAttack)
	if s := fs.Decision.String(); s != "" {
		set("decision", s)
	}
	if fs.Resumed {
		set("resumed", true)
	}

	if err != nil {
		return nil, err
	}
	return out, nil
}
