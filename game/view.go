package game

import (
	"sort"

	"vtt-session-engine/grid"
)

// Fog renders darker for players than for the master, and entities on fogged
// cells are dimmed for the master but hidden from players entirely.
const (
	fogOpacityMaster    = 0.55
	fogOpacityPlayer    = 0.9
	dimmedEntityOpacity = 0.5
)

// ViewToken is a token as one viewer sees it.
type ViewToken struct {
	Token
	Opacity float64 `json:"opacity"`
}

// ViewMarker is a marker as one viewer sees it.
type ViewMarker struct {
	Marker
	Opacity float64 `json:"opacity"`
}

// FogTile is one concealed cell with the tint strength for this viewer.
type FogTile struct {
	Cell    grid.Cell `json:"cell"`
	Opacity float64   `json:"opacity"`
}

// View is the render model sent to a single viewer. Entries are sorted by id
// so repeated snapshots of the same state compare equal.
type View struct {
	Dimension int          `json:"dimension"`
	ActiveMap string       `json:"activeMap"`
	Tokens    []ViewToken  `json:"tokens"`
	Markers   []ViewMarker `json:"markers"`
	Fog       []FogTile    `json:"fog"`
	Strokes   []Stroke     `json:"strokes"`
}

// ViewFor projects the state for one viewer. Fog conceals tokens and markers
// from non-privileged viewers; the map state itself is never altered by
// visibility.
func ViewFor(s *State, privileged bool) View {
	v := View{
		Dimension: s.Dimension,
		ActiveMap: s.ActiveMap,
		Strokes:   s.Strokes,
	}

	fogOpacity := fogOpacityPlayer
	if privileged {
		fogOpacity = fogOpacityMaster
	}
	for _, c := range s.Fog {
		v.Fog = append(v.Fog, FogTile{Cell: c, Opacity: fogOpacity})
	}
	sort.Slice(v.Fog, func(i, j int) bool {
		if v.Fog[i].Cell.Y != v.Fog[j].Cell.Y {
			return v.Fog[i].Cell.Y < v.Fog[j].Cell.Y
		}
		return v.Fog[i].Cell.X < v.Fog[j].Cell.X
	})

	for _, t := range s.Tokens {
		opacity := 1.0
		if s.Fogged(t.Pos) {
			if !privileged {
				continue
			}
			opacity = dimmedEntityOpacity
		}
		v.Tokens = append(v.Tokens, ViewToken{Token: t, Opacity: opacity})
	}
	sort.Slice(v.Tokens, func(i, j int) bool { return v.Tokens[i].ID < v.Tokens[j].ID })

	for _, m := range s.Markers {
		opacity := 1.0
		if s.Fogged(m.Pos) {
			if !privileged {
				continue
			}
			opacity = dimmedEntityOpacity
		}
		v.Markers = append(v.Markers, ViewMarker{Marker: m, Opacity: opacity})
	}
	sort.Slice(v.Markers, func(i, j int) bool { return v.Markers[i].ID < v.Markers[j].ID })

	return v
}
