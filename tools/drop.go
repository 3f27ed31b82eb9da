package tools

import (
	"github.com/google/uuid"

	"vtt-session-engine/game"
	"vtt-session-engine/grid"
)

// Drop payload kinds. The payload is a tagged union decoded once at the drop
// boundary.
const (
	DropToken = "token" // relocate an existing token
	DropNPC   = "npc"   // instantiate from an NPC template
	DropUser  = "user"  // instantiate a player's own token
)

// DropPayload describes what was dragged onto a grid cell.
type DropPayload struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	ImgPath string `json:"imgPath,omitempty"`
}

// Drop handles a drag-and-drop release at a pixel point. It is independent of
// the active tool: any grid cell accepts a drop. Relocation requires
// ownership or master privilege, NPC instantiation requires the master, and a
// player token may only be instantiated by its own user.
func (c *Controller) Drop(payload DropPayload, p grid.Point) []Intent {
	cell, ok := grid.CellAt(p, c.surface, c.state.Dimension)
	if !ok {
		return nil
	}

	switch payload.Kind {
	case DropToken:
		if !game.Can(game.ActionMoveToken, c.actor, c.state, payload.ID) {
			return nil
		}
		return []Intent{MoveToken{ID: payload.ID, To: cell}}

	case DropNPC:
		if !game.Can(game.ActionSpawnNPC, c.actor, c.state, "") {
			return nil
		}
		return []Intent{SpawnToken{Token: game.Token{
			ID:      uuid.NewString(),
			OwnerID: payload.ID,
			Kind:    game.KindNPC,
			Name:    payload.Name,
			ImgPath: payload.ImgPath,
			Pos:     cell,
		}}}

	case DropUser:
		if !game.Can(game.ActionSpawnOwn, c.actor, c.state, payload.ID) {
			return nil
		}
		return []Intent{SpawnToken{Token: game.Token{
			ID:      uuid.NewString(),
			OwnerID: payload.ID,
			Kind:    game.KindPlayer,
			Name:    payload.Name,
			ImgPath: payload.ImgPath,
			Pos:     cell,
		}}}
	}
	return nil
}
