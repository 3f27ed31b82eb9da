package session

import (
	"encoding/json"
	"log"

	"vtt-session-engine/dice"
	"vtt-session-engine/game"
	"vtt-session-engine/grid"
	"vtt-session-engine/tools"
)

type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Wire payloads.

type pointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type surfacePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type setToolPayload struct {
	Tool string `json:"tool"`
}

type setColorPayload struct {
	Target string `json:"target"` // "mark" | "draw"
	Color  string `json:"color"`
}

type dropEventPayload struct {
	tools.DropPayload
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type addTokenPayload struct {
	Token game.Token `json:"token"`
}

type moveTokenPayload struct {
	ID string    `json:"id"`
	To grid.Cell `json:"to"`
}

type deleteTokenPayload struct {
	ID string `json:"id"`
}

type markerPayload struct {
	Marker game.Marker `json:"marker"`
}

type cellPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type setMapPayload struct {
	Path string `json:"path"`
}

type chatPayload struct {
	Text string `json:"text"`
}

type measurePayload struct {
	Active   bool       `json:"active"`
	From     grid.Point `json:"from"`
	To       grid.Point `json:"to"`
	Distance int        `json:"distance"`
}

type statePayload struct {
	Version int       `json:"version"`
	View    game.View `json:"view"`
}

type chatBroadcast struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Text   string `json:"text"`
}

type rollBroadcast struct {
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Command   string      `json:"command"`
	Formatted string      `json:"formatted"`
	Result    dice.Result `json:"result"`
}

// processCommand interprets one client message against the session. It
// returns messages for the sender alone, messages for every participant, and
// whether the map state changed. Malformed payloads and unauthorized actions
// degrade to no-ops; a live table must never crash on bad input.
func processCommand(msg ClientMessage, sess *Session, cl *client) (replies, broadcasts []ServerMessage, changed bool) {
	decode := func(v interface{}) bool {
		if err := json.Unmarshal(msg.Payload, v); err != nil {
			log.Printf("invalid %s payload: %v", msg.Type, err)
			return false
		}
		return true
	}

	apply := func(intents []tools.Intent) {
		if len(intents) == 0 {
			return
		}
		tools.Apply(&sess.State, intents)
		changed = true
	}

	measureReply := func() {
		from, to, d, ok := cl.ctrl.Measurement()
		replies = append(replies, ServerMessage{Type: "measure", Payload: measurePayload{
			Active: ok, From: from, To: to, Distance: d,
		}})
	}

	switch msg.Type {
	// Tool state machine input.
	case "set_tool":
		var p setToolPayload
		if !decode(&p) {
			return
		}
		if tool, ok := tools.ParseTool(p.Tool); ok {
			cl.ctrl.SetTool(tool)
		}

	case "set_color":
		var p setColorPayload
		if !decode(&p) {
			return
		}
		switch p.Target {
		case "mark":
			cl.ctrl.SetMarkColor(p.Color)
		case "draw":
			cl.ctrl.SetDrawColor(p.Color)
		}

	case "surface":
		var p surfacePayload
		if !decode(&p) {
			return
		}
		cl.ctrl.SetSurface(grid.Size{Width: p.Width, Height: p.Height})

	case "pointer_down":
		var p pointerPayload
		if !decode(&p) {
			return
		}
		apply(cl.ctrl.PointerDown(grid.Point{X: p.X, Y: p.Y}))
		if cl.ctrl.Tool() == tools.ToolMeasure {
			measureReply()
		}

	case "pointer_move":
		var p pointerPayload
		if !decode(&p) {
			return
		}
		apply(cl.ctrl.PointerMove(grid.Point{X: p.X, Y: p.Y}))
		if cl.ctrl.Tool() == tools.ToolMeasure {
			measureReply()
		}

	case "pointer_up":
		apply(cl.ctrl.PointerUp())
		if cl.ctrl.Tool() == tools.ToolMeasure {
			measureReply()
		}

	case "click":
		var p pointerPayload
		if !decode(&p) {
			return
		}
		apply(cl.ctrl.Click(grid.Point{X: p.X, Y: p.Y}))

	case "escape":
		cl.ctrl.Escape()

	case "drop":
		var p dropEventPayload
		if !decode(&p) {
			return
		}
		apply(cl.ctrl.Drop(p.DropPayload, grid.Point{X: p.X, Y: p.Y}))

	// Area actions on the committed selection.
	case "hide_area":
		apply(cl.ctrl.HideArea())
	case "reveal_area":
		apply(cl.ctrl.RevealArea())
	case "remove_tokens_area":
		apply(cl.ctrl.RemoveTokensInArea())
	case "clear_selection":
		cl.ctrl.ClearSelection()

	// Direct entity mutations: the replay path for remote events. Stale or
	// malformed ones no-op inside the state mutators.
	case "add_token":
		var p addTokenPayload
		if !decode(&p) {
			return
		}
		if p.Token.Kind != game.KindPlayer && p.Token.Kind != game.KindNPC {
			return
		}
		action := game.ActionSpawnOwn
		if p.Token.Kind == game.KindNPC {
			action = game.ActionSpawnNPC
		}
		if !game.Can(action, cl.actor, &sess.State, p.Token.OwnerID) {
			return
		}
		// An id that already names a token makes this a replace, which is
		// only allowed for whoever could move the existing token.
		if _, exists := sess.State.Tokens[p.Token.ID]; exists {
			if !game.Can(game.ActionMoveToken, cl.actor, &sess.State, p.Token.ID) {
				return
			}
		}
		sess.State.AddToken(p.Token)
		changed = true

	case "move_token":
		var p moveTokenPayload
		if !decode(&p) {
			return
		}
		if !game.Can(game.ActionMoveToken, cl.actor, &sess.State, p.ID) {
			return
		}
		sess.State.MoveToken(p.ID, p.To)
		changed = true

	case "delete_token":
		var p deleteTokenPayload
		if !decode(&p) {
			return
		}
		if !game.Can(game.ActionMoveToken, cl.actor, &sess.State, p.ID) {
			return
		}
		sess.State.DeleteToken(p.ID)
		changed = true

	case "clear_tokens":
		if !game.Can(game.ActionClearAll, cl.actor, &sess.State, "") {
			return
		}
		sess.State.ClearTokens()
		changed = true

	case "place_marker":
		var p markerPayload
		if !decode(&p) {
			return
		}
		if !game.Can(game.ActionMark, cl.actor, &sess.State, "") {
			return
		}
		sess.State.PlaceMarker(p.Marker)
		changed = true

	case "remove_marker":
		var p cellPayload
		if !decode(&p) {
			return
		}
		if !game.Can(game.ActionMark, cl.actor, &sess.State, "") {
			return
		}
		sess.State.RemoveMarkerAt(grid.Cell{X: p.X, Y: p.Y})
		changed = true

	case "clear_markers":
		if !game.Can(game.ActionClearAll, cl.actor, &sess.State, "") {
			return
		}
		sess.State.ClearMarkers()
		changed = true

	case "clear_lines":
		if !game.Can(game.ActionClearAll, cl.actor, &sess.State, "") {
			return
		}
		sess.State.ClearStrokes()
		changed = true

	case "set_map":
		var p setMapPayload
		if !decode(&p) {
			return
		}
		if !game.Can(game.ActionSetMap, cl.actor, &sess.State, "") {
			return
		}
		sess.State.SetActiveMap(p.Path)
		changed = true

	// Chat and dice.
	case "chat":
		var p chatPayload
		if !decode(&p) {
			return
		}
		if !dice.IsCommand(p.Text) {
			broadcasts = append(broadcasts, ServerMessage{Type: "chat", Payload: chatBroadcast{
				UserID: cl.actor.UserID, Name: cl.name, Text: p.Text,
			}})
			return
		}
		expr := dice.Parse(p.Text)
		if expr == nil {
			// A failed roll never reaches the table, only the roller.
			replies = append(replies, ServerMessage{Type: "dice_help", Payload: textPayload(dice.HelpText)})
			return
		}
		res := expr.Roll(nil)
		broadcasts = append(broadcasts, ServerMessage{Type: "roll", Payload: rollBroadcast{
			UserID:    cl.actor.UserID,
			Name:      cl.name,
			Command:   res.Raw,
			Formatted: res.String(),
			Result:    res,
		}})

	default:
		log.Println("unknown message type:", msg.Type)
	}

	return replies, broadcasts, changed
}

func textPayload(text string) map[string]string {
	return map[string]string{"text": text}
}
