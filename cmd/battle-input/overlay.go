package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/gjson"

	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/engine"
	"github.com/lixenwraith/battle-input/status"
)

const (
	groundRow   = 8
	stageLeft   = 2
	frameRow    = groundRow + 2
	movesRow    = frameRow + 3
	statusRow   = movesRow + 2
	maxMoveLog  = 8
	helpMessage = "1-9 stick  u/i/o/p A-D  f flip  h hit  l land  x reset  q quit"
)

var (
	styleDefault = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stylePuppet  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFrozen  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleCancel  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// moveLog keeps the most recent non-empty decisions, oldest first
type moveLog struct {
	entries []string
	frame   uint64
}

// add records st's decision once per frame
func (m *moveLog) add(st *engine.FrameState) {
	if st == nil || st.Frame == m.frame {
		return
	}
	m.frame = st.Frame
	s := st.Decision.String()
	if s == "" {
		return
	}
	m.entries = append(m.entries, s)
	if len(m.entries) > maxMoveLog {
		m.entries = m.entries[len(m.entries)-maxMoveLog:]
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawOverlay paints the whole harness view
func drawOverlay(s tcell.Screen, v puppetView, st *engine.FrameState, moves *moveLog, stats []status.Entry) {
	s.Clear()
	drawText(s, 0, 0, styleTitle, "battle-input training")
	drawText(s, 0, 1, styleDim, helpMessage)
	drawStage(s, v)
	drawFrame(s, st)

	drawText(s, 0, movesRow, styleDim, "moves:")
	if moves != nil {
		drawText(s, 7, movesRow, styleDefault, strings.Join(moves.entries, " > "))
	}

	for i, e := range stats {
		drawText(s, 0, statusRow+i, styleDim, fmt.Sprintf("%-20s %s", e.Key, e.Value))
	}
	s.Show()
}

func drawStage(s tcell.Screen, v puppetView) {
	for x := 0; x <= int(stageWidth); x++ {
		s.SetContent(stageLeft+x, groundRow+1, '─', nil, styleDim)
	}

	glyph := '>'
	if v.Facing < 0 {
		glyph = '<'
	}
	row := groundRow - int(v.Y/2)
	if row < 2 {
		row = 2
	}
	s.SetContent(stageLeft+int(v.X), row, glyph, nil, stylePuppet)
	if v.Last != "" {
		drawText(s, stageLeft+int(stageWidth)+3, groundRow, styleDim, v.Last)
	}
}

// drawFrame renders the frame trace line, read back through its JSON encoding
func drawFrame(s tcell.Screen, st *engine.FrameState) {
	if st == nil {
		drawText(s, 0, frameRow, styleDim, "waiting for first frame")
		return
	}
	line, err := engine.EncodeFrame(*st)
	if err != nil {
		drawText(s, 0, frameRow, styleFrozen, err.Error())
		return
	}

	doc := gjson.ParseBytes(line)
	style := styleDefault
	switch {
	case doc.Get("frozen").Bool():
		style = styleFrozen
	case doc.Get("state").String() == combat.StateCancelEligible.String():
		style = styleCancel
	}
	drawText(s, 0, frameRow, style, fmt.Sprintf("frame %-6d dir %s  state %-14s attack %-8s pending %s",
		doc.Get("frame").Uint(),
		doc.Get("dir").String(),
		doc.Get("state").String(),
		doc.Get("attack").String(),
		doc.Get("pending").String(),
	))

	var held []string
	doc.Get("buttons").ForEach(func(k, v gjson.Result) bool {
		held = append(held, strings.ToUpper(k.String())+":"+v.String())
		return true
	})
	extra := fmt.Sprintf("into attack %d  buttons [%s]", doc.Get("frames_into_attack").Int(), strings.Join(held, " "))
	if doc.Get("resumed").Bool() {
		extra += "  resumed"
	}
	drawText(s, 0, frameRow+1, styleDim, extra)
}
