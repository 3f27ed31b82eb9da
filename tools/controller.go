// Package tools implements the per-client interaction state machine: the
// active tool, measurement anchors, in-progress strokes and the two-click
// area selection. Input events come in, mutation intents come out; the
// controller never writes to the map state itself.
package tools

import (
	"github.com/google/uuid"

	"vtt-session-engine/game"
	"vtt-session-engine/grid"
)

// Tool is the active interaction mode.
type Tool string

const (
	ToolMove    Tool = "move"
	ToolMeasure Tool = "measure"
	ToolMark    Tool = "mark"
	ToolDraw    Tool = "draw"
)

// ParseTool validates a wire tool name.
func ParseTool(s string) (Tool, bool) {
	switch Tool(s) {
	case ToolMove, ToolMeasure, ToolMark, ToolDraw:
		return Tool(s), true
	default:
		return "", false
	}
}

type areaPhase int

const (
	areaIdle areaPhase = iota
	areaAwaitingSecond
)

const (
	defaultMarkColor = "#e74c3c"
	defaultDrawColor = "#2c3e50"
)

// Controller owns one client's ephemeral interaction state. It reads the
// shared map state for bounds and permission checks but mutates it only
// through the intents it returns.
type Controller struct {
	actor   game.Actor
	state   *game.State
	surface grid.Size
	perCell float64

	tool      Tool
	markColor string
	drawColor string

	measureFrom *grid.Point
	measureTo   *grid.Point

	strokeID string

	areaState   areaPhase
	areaAnchor  grid.Cell
	areaPreview *grid.Cell
	committed   *grid.Rect
}

// NewController returns a controller in move mode. perCell is the in-game
// distance one cell represents for the measure tool.
func NewController(actor game.Actor, state *game.State, perCell float64) *Controller {
	return &Controller{
		actor:     actor,
		state:     state,
		perCell:   perCell,
		tool:      ToolMove,
		markColor: defaultMarkColor,
		drawColor: defaultDrawColor,
	}
}

// SetSurface records the client's current viewport size. Pixel input is
// meaningless until the surface is known.
func (c *Controller) SetSurface(s grid.Size) {
	if s.Width > 0 && s.Height > 0 {
		c.surface = s
	}
}

// Tool returns the active tool.
func (c *Controller) Tool() Tool { return c.tool }

// SetTool switches the active tool and discards every in-progress interaction
// of the previous one; tools never share ephemeral state.
func (c *Controller) SetTool(t Tool) {
	if t == c.tool {
		return
	}
	c.tool = t
	c.measureFrom = nil
	c.measureTo = nil
	c.strokeID = ""
	c.clearArea()
}

// SetMarkColor selects the palette color for new markers.
func (c *Controller) SetMarkColor(color string) {
	if color != "" {
		c.markColor = color
	}
}

// SetDrawColor selects the color for new strokes.
func (c *Controller) SetDrawColor(color string) {
	if color != "" {
		c.drawColor = color
	}
}

func (c *Controller) onSurface(p grid.Point) bool {
	return c.surface.Width > 0 && c.surface.Height > 0 &&
		p.X >= 0 && p.X < c.surface.Width && p.Y >= 0 && p.Y < c.surface.Height
}

// PointerDown starts a measurement or a stroke, depending on the tool.
func (c *Controller) PointerDown(p grid.Point) []Intent {
	if !c.onSurface(p) {
		return nil
	}

	switch c.tool {
	case ToolMeasure:
		anchor := p
		c.measureFrom = &anchor
		end := p
		c.measureTo = &end
		return nil

	case ToolDraw:
		if !game.Can(game.ActionDraw, c.actor, c.state, "") {
			return nil
		}
		c.strokeID = uuid.NewString()
		return []Intent{BeginStroke{Stroke: game.Stroke{
			ID:     c.strokeID,
			Color:  c.drawColor,
			Points: []grid.Point{p},
		}}}
	}
	return nil
}

// PointerMove updates the live measurement endpoint, extends an in-progress
// stroke, or moves the area-selection preview.
func (c *Controller) PointerMove(p grid.Point) []Intent {
	switch c.tool {
	case ToolMeasure:
		if c.measureFrom != nil && c.onSurface(p) {
			end := p
			c.measureTo = &end
		}
		return nil

	case ToolDraw:
		if c.strokeID != "" && c.onSurface(p) {
			return []Intent{ExtendStroke{ID: c.strokeID, Point: p}}
		}
		return nil

	case ToolMove:
		if c.areaState == areaAwaitingSecond {
			if cell, ok := grid.CellAt(p, c.surface, c.state.Dimension); ok {
				c.areaPreview = &cell
			}
		}
		return nil
	}
	return nil
}

// PointerUp ends a measurement or a stroke. The committed area selection is
// untouched; only Escape or an area action clears it.
func (c *Controller) PointerUp() []Intent {
	c.measureFrom = nil
	c.measureTo = nil
	c.strokeID = ""
	return nil
}

// Click places or removes a marker in mark mode, and drives the two-click
// area selection in move mode. Clicks outside the grid are ignored.
func (c *Controller) Click(p grid.Point) []Intent {
	cell, ok := grid.CellAt(p, c.surface, c.state.Dimension)
	if !ok {
		return nil
	}

	switch c.tool {
	case ToolMark:
		if !game.Can(game.ActionMark, c.actor, c.state, "") {
			return nil
		}
		// Clicking an occupied cell removes its marker instead.
		if _, occupied := c.state.MarkerAt(cell); occupied {
			return []Intent{RemoveMarkerAt{Cell: cell}}
		}
		return []Intent{PlaceMarker{Marker: game.Marker{
			ID:    uuid.NewString(),
			Pos:   cell,
			Color: c.markColor,
		}}}

	case ToolMove:
		if !game.Can(game.ActionAreaSelect, c.actor, c.state, "") {
			return nil
		}
		switch c.areaState {
		case areaIdle:
			c.areaAnchor = cell
			c.areaPreview = nil
			c.committed = nil
			c.areaState = areaAwaitingSecond
		case areaAwaitingSecond:
			// The commit spans anchor to this click, not the hover preview.
			r := grid.RectBetween(c.areaAnchor, cell)
			c.committed = &r
			c.areaPreview = nil
			c.areaState = areaIdle
		}
		return nil
	}
	return nil
}

// Escape cancels the area selection, pending or committed. An in-flight
// stroke or measurement self-terminates on pointer-up instead.
func (c *Controller) Escape() {
	c.clearArea()
}

func (c *Controller) clearArea() {
	c.areaState = areaIdle
	c.areaPreview = nil
	c.committed = nil
}

// Measurement reports the live ruler, in scaled cell units, while a
// measurement drag is in progress.
func (c *Controller) Measurement() (from, to grid.Point, distance int, ok bool) {
	if c.measureFrom == nil || c.measureTo == nil {
		return grid.Point{}, grid.Point{}, 0, false
	}
	d := grid.Distance(*c.measureFrom, *c.measureTo, c.surface, c.state.Dimension, c.perCell)
	return *c.measureFrom, *c.measureTo, d, true
}

// Preview returns the live anchor-to-hover rectangle while the second click
// is pending.
func (c *Controller) Preview() (grid.Rect, bool) {
	if c.areaState != areaAwaitingSecond || c.areaPreview == nil {
		return grid.Rect{}, false
	}
	return grid.RectBetween(c.areaAnchor, *c.areaPreview), true
}

// Committed returns the last committed selection rectangle.
func (c *Controller) Committed() (grid.Rect, bool) {
	if c.committed == nil {
		return grid.Rect{}, false
	}
	return *c.committed, true
}

// HideArea fogs every cell of the committed rectangle and clears the
// selection.
func (c *Controller) HideArea() []Intent {
	r, ok := c.takeCommitted()
	if !ok {
		return nil
	}
	return []Intent{HideCells{Cells: r.Cells()}}
}

// RevealArea clears fog from the committed rectangle and clears the
// selection.
func (c *Controller) RevealArea() []Intent {
	r, ok := c.takeCommitted()
	if !ok {
		return nil
	}
	return []Intent{RevealCells{Cells: r.Cells()}}
}

// RemoveTokensInArea deletes the tokens inside the committed rectangle and
// clears the selection.
func (c *Controller) RemoveTokensInArea() []Intent {
	r, ok := c.takeCommitted()
	if !ok {
		return nil
	}
	return []Intent{RemoveTokensIn{Rect: r}}
}

// ClearSelection discards the committed rectangle without side effects.
func (c *Controller) ClearSelection() {
	c.clearArea()
}

func (c *Controller) takeCommitted() (grid.Rect, bool) {
	if c.committed == nil || !game.Can(game.ActionAreaApply, c.actor, c.state, "") {
		return grid.Rect{}, false
	}
	r := *c.committed
	c.clearArea()
	return r, true
}
