// Package game holds the shared map state for one session: tokens, markers,
// fog of war, freehand strokes and the active map. Mutators are defensive so
// that a malformed or stale remote event degrades to a no-op instead of
// corrupting a live session.
package game

import "vtt-session-engine/grid"

// TokenKind distinguishes player tokens from NPC tokens.
type TokenKind string

const (
	KindPlayer TokenKind = "player"
	KindNPC    TokenKind = "npc"
)

// Token is a movable character marker on the grid.
type Token struct {
	ID      string    `json:"id"`
	OwnerID string    `json:"ownerId"`
	Kind    TokenKind `json:"kind"`
	Name    string    `json:"name"`
	ImgPath string    `json:"imgPath"`
	Pos     grid.Cell `json:"pos"`
}

// Marker is a static colored point annotation placed by the master.
type Marker struct {
	ID    string    `json:"id"`
	Pos   grid.Cell `json:"pos"`
	Color string    `json:"color"`
	Label string    `json:"label,omitempty"`
}

// Stroke is a freehand drawing in pixel space; it renders independent of grid
// snapping.
type Stroke struct {
	ID     string       `json:"id"`
	Color  string       `json:"color"`
	Points []grid.Point `json:"points"`
}

// State is the authoritative shared model for a session. Fog is a cell set
// keyed by grid.Cell.Key().
type State struct {
	Dimension int                  `json:"dimension"`
	ActiveMap string               `json:"activeMap"`
	Tokens    map[string]Token     `json:"tokens"`
	Markers   map[string]Marker    `json:"markers"`
	Fog       map[string]grid.Cell `json:"fog"`
	Strokes   []Stroke             `json:"strokes"`
}

const DefaultDimension = 20

// NewState returns an empty map state. A dimension below 1 falls back to the
// default.
func NewState(dimension int) State {
	if dimension < 1 {
		dimension = DefaultDimension
	}
	return State{
		Dimension: dimension,
		ActiveMap: "/assets/default/maps/blank.jpg",
		Tokens:    make(map[string]Token),
		Markers:   make(map[string]Marker),
		Fog:       make(map[string]grid.Cell),
	}
}

func (s *State) inBounds(c grid.Cell) bool {
	return c.X >= 0 && c.X < s.Dimension && c.Y >= 0 && c.Y < s.Dimension
}

// AddToken inserts or replaces a token. Tokens without an id or outside the
// grid are ignored.
func (s *State) AddToken(t Token) {
	if t.ID == "" || !s.inBounds(t.Pos) {
		return
	}
	s.Tokens[t.ID] = t
}

// MoveToken relocates an existing token. Unknown ids and out-of-range cells
// are ignored; fog never blocks a move, it only affects rendering.
func (s *State) MoveToken(id string, to grid.Cell) {
	t, ok := s.Tokens[id]
	if !ok || !s.inBounds(to) {
		return
	}
	t.Pos = to
	s.Tokens[id] = t
}

// DeleteToken removes a token by id.
func (s *State) DeleteToken(id string) {
	delete(s.Tokens, id)
}

// RemoveTokensIn deletes every token whose cell falls inside the rectangle.
func (s *State) RemoveTokensIn(r grid.Rect) {
	for id, t := range s.Tokens {
		if r.Contains(t.Pos) {
			delete(s.Tokens, id)
		}
	}
}

// ClearTokens removes every token.
func (s *State) ClearTokens() {
	s.Tokens = make(map[string]Token)
}

// PlaceMarker adds a marker. Markers without an id or outside the grid are
// ignored.
func (s *State) PlaceMarker(m Marker) {
	if m.ID == "" || !s.inBounds(m.Pos) {
		return
	}
	s.Markers[m.ID] = m
}

// MarkerAt returns the marker occupying a cell, if any.
func (s *State) MarkerAt(c grid.Cell) (Marker, bool) {
	for _, m := range s.Markers {
		if m.Pos == c {
			return m, true
		}
	}
	return Marker{}, false
}

// RemoveMarkerAt deletes any marker on the given cell. Removing from an empty
// cell is a no-op.
func (s *State) RemoveMarkerAt(c grid.Cell) {
	for id, m := range s.Markers {
		if m.Pos == c {
			delete(s.Markers, id)
		}
	}
}

// ClearMarkers removes every marker.
func (s *State) ClearMarkers() {
	s.Markers = make(map[string]Marker)
}

// HideCells unions the cells into the fog set. Out-of-range cells are skipped;
// hiding an already fogged cell changes nothing.
func (s *State) HideCells(cells []grid.Cell) {
	for _, c := range cells {
		if s.inBounds(c) {
			s.Fog[c.Key()] = c
		}
	}
}

// RevealCells removes the cells from the fog set. Revealing a clear cell is a
// no-op.
func (s *State) RevealCells(cells []grid.Cell) {
	for _, c := range cells {
		delete(s.Fog, c.Key())
	}
}

// Fogged reports whether a cell is concealed.
func (s *State) Fogged(c grid.Cell) bool {
	_, ok := s.Fog[c.Key()]
	return ok
}

// BeginStroke starts a new freehand stroke. Strokes without an id are ignored.
func (s *State) BeginStroke(st Stroke) {
	if st.ID == "" {
		return
	}
	s.Strokes = append(s.Strokes, st)
}

// ExtendStroke appends a point to an existing stroke. Unknown ids are ignored.
func (s *State) ExtendStroke(id string, p grid.Point) {
	for i := len(s.Strokes) - 1; i >= 0; i-- {
		if s.Strokes[i].ID == id {
			s.Strokes[i].Points = append(s.Strokes[i].Points, p)
			return
		}
	}
}

// ClearStrokes removes every drawing.
func (s *State) ClearStrokes() {
	s.Strokes = nil
}

// SetActiveMap switches the map image reference. Empty paths are ignored.
func (s *State) SetActiveMap(path string) {
	if path == "" {
		return
	}
	s.ActiveMap = path
}
