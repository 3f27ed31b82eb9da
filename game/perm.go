package game

// Actor identifies the user attempting an action.
type Actor struct {
	UserID string `json:"userId"`
	Master bool   `json:"master"`
}

// Action names a privileged operation on the map.
type Action string

const (
	ActionMoveToken  Action = "move_token"
	ActionSpawnNPC   Action = "spawn_npc"
	ActionSpawnOwn   Action = "spawn_own"
	ActionMark       Action = "mark"
	ActionDraw       Action = "draw"
	ActionAreaSelect Action = "area_select"
	ActionAreaApply  Action = "area_apply"
	ActionSetMap     Action = "set_map"
	ActionClearAll   Action = "clear_all"
)

// Can is the single capability check consulted by every mutating entry point.
// The master may do anything. A player may move a token they own and spawn a
// token for their own user id; everything else is denied. target is the token
// id for ActionMoveToken and the user id for ActionSpawnOwn.
func Can(action Action, actor Actor, s *State, target string) bool {
	if actor.Master {
		return true
	}

	switch action {
	case ActionMoveToken:
		t, ok := s.Tokens[target]
		return ok && t.OwnerID == actor.UserID
	case ActionSpawnOwn:
		return target != "" && target == actor.UserID
	default:
		return false
	}
}
