package tools

import (
	"vtt-session-engine/game"
	"vtt-session-engine/grid"
)

// Intent is a mutation the controller wants applied to the map state. Intents
// are how tool interactions reach the shared model; the session layer applies
// them locally and forwards them to the other participants.
type Intent interface{ isIntent() }

// SpawnToken creates a new token at a drop cell.
type SpawnToken struct{ Token game.Token }

// MoveToken relocates an existing token.
type MoveToken struct {
	ID string
	To grid.Cell
}

// PlaceMarker adds a marker at a clicked cell.
type PlaceMarker struct{ Marker game.Marker }

// RemoveMarkerAt deletes the marker occupying a cell.
type RemoveMarkerAt struct{ Cell grid.Cell }

// BeginStroke starts a freehand drawing.
type BeginStroke struct{ Stroke game.Stroke }

// ExtendStroke appends one point to an in-progress drawing.
type ExtendStroke struct {
	ID    string
	Point grid.Point
}

// HideCells fogs a batch of cells.
type HideCells struct{ Cells []grid.Cell }

// RevealCells clears fog from a batch of cells.
type RevealCells struct{ Cells []grid.Cell }

// RemoveTokensIn deletes every token inside a rectangle.
type RemoveTokensIn struct{ Rect grid.Rect }

func (SpawnToken) isIntent()     {}
func (MoveToken) isIntent()      {}
func (PlaceMarker) isIntent()    {}
func (RemoveMarkerAt) isIntent() {}
func (BeginStroke) isIntent()    {}
func (ExtendStroke) isIntent()   {}
func (HideCells) isIntent()      {}
func (RevealCells) isIntent()    {}
func (RemoveTokensIn) isIntent() {}

// Apply funnels intents through the named state mutators. Unknown intent
// values are ignored.
func Apply(s *game.State, intents []Intent) {
	for _, in := range intents {
		switch m := in.(type) {
		case SpawnToken:
			s.AddToken(m.Token)
		case MoveToken:
			s.MoveToken(m.ID, m.To)
		case PlaceMarker:
			s.PlaceMarker(m.Marker)
		case RemoveMarkerAt:
			s.RemoveMarkerAt(m.Cell)
		case BeginStroke:
			s.BeginStroke(m.Stroke)
		case ExtendStroke:
			s.ExtendStroke(m.ID, m.Point)
		case HideCells:
			s.HideCells(m.Cells)
		case RevealCells:
			s.RevealCells(m.Cells)
		case RemoveTokensIn:
			s.RemoveTokensIn(m.Rect)
		}
	}
}
