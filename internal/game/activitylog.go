package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

const (
	activityPanelWidth = 300
	activityMaxEntries = 40
	activityLineHeight = 14
)

// ActivityKind tags an activity entry for colouring.
type ActivityKind uint8

const (
	ActivityPlaced ActivityKind = iota
	ActivityGround
	ActivityDeleted
	ActivityRejected
	ActivityHub
	ActivityInfo
)

var activityColours = map[ActivityKind]color.RGBA{
	ActivityPlaced:   colornames.Mediumseagreen,
	ActivityGround:   colornames.Burlywood,
	ActivityDeleted:  colornames.Orange,
	ActivityRejected: colornames.Crimson,
	ActivityHub:      colornames.Gold,
	ActivityInfo:     colornames.Lightsteelblue,
}

// ActivityEntry is one line in the activity log.
type ActivityEntry struct {
	Tick    int
	Kind    ActivityKind
	Message string
}

// ActivityLog is a ring buffer of recent city actions.
type ActivityLog struct {
	entries []ActivityEntry
	head    int
	count   int
}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{entries: make([]ActivityEntry, activityMaxEntries)}
}

// Add appends an entry, overwriting the oldest when full.
func (al *ActivityLog) Add(tick int, kind ActivityKind, msg string) {
	al.entries[al.head] = ActivityEntry{Tick: tick, Kind: kind, Message: msg}
	al.head = (al.head + 1) % activityMaxEntries
	if al.count < activityMaxEntries {
		al.count++
	}
}

// Recent returns entries oldest first.
func (al *ActivityLog) Recent() []ActivityEntry {
	out := make([]ActivityEntry, al.count)
	for i := 0; i < al.count; i++ {
		out[i] = al.entries[(al.head-al.count+i+activityMaxEntries)%activityMaxEntries]
	}
	return out
}

// Len returns the number of stored entries.
func (al *ActivityLog) Len() int { return al.count }

// Draw renders the panel at the top right, newest entry at the bottom.
func (al *ActivityLog) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, activityPanelWidth, float32(panelH), color.RGBA{R: 14, G: 16, B: 20, A: 220}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, activityPanelWidth, 16, color.RGBA{R: 26, G: 30, B: 40, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "ACTIVITY", panelX+8, 0)

	entries := al.Recent()
	maxVisible := (panelH - 20) / activityLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	y := 20
	for _, e := range entries {
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, activityColours[e.Kind], false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += activityLineHeight
	}
}
