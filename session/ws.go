package session

import (
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"

	"vtt-session-engine/game"
	"vtt-session-engine/tools"
)

// HandleWS runs one client connection: join, read loop, dispatch, leave.
func (m *Manager) HandleWS(c *websocket.Conn) {
	sessionID := c.Params("sessionId")
	userID := c.Query("user")
	name := c.Query("name", userID)

	m.mu.Lock()
	sess, ok := m.sessions[sessionID]
	if !ok || userID == "" {
		m.mu.Unlock()
		c.Close()
		return
	}
	if len(sess.Clients) >= m.cfg.MaxUsersPerSession {
		m.mu.Unlock()
		log.Printf("session %s full, rejecting %s", sessionID, userID)
		c.Close()
		return
	}

	actor := game.Actor{UserID: userID, Master: userID == sess.MasterID}
	cl := &client{
		actor: actor,
		name:  name,
		ctrl:  tools.NewController(actor, &sess.State, m.cfg.DistancePerCell),
	}
	sess.Clients[c] = cl
	log.Printf("client %s joined session %s (%d connected)", userID, sessionID, len(sess.Clients))

	// Late-joiner sync: the first message is this viewer's filtered state.
	sendState(c, sess, cl)
	m.mu.Unlock()

	defer func() {
		c.Close()
		m.mu.Lock()
		delete(sess.Clients, c)
		m.mu.Unlock()
	}()

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Println("invalid message:", err)
			continue
		}

		m.mu.Lock()
		replies, broadcasts, changed := processCommand(msg, sess, cl)
		for _, r := range replies {
			writeMessage(c, r)
		}
		for _, b := range broadcasts {
			for conn := range sess.Clients {
				writeMessage(conn, b)
			}
		}
		if changed {
			sess.Version++
			sess.dirty = true
			broadcastState(sess)
		}
		m.mu.Unlock()
	}
}

// broadcastState sends every client its own privilege-filtered view. The
// originator receives its echo too.
func broadcastState(sess *Session) {
	for conn, cl := range sess.Clients {
		sendState(conn, sess, cl)
	}
}

func sendState(conn *websocket.Conn, sess *Session, cl *client) {
	writeMessage(conn, ServerMessage{
		Type: "state_update",
		Payload: statePayload{
			Version: sess.Version,
			View:    game.ViewFor(&sess.State, cl.actor.Master),
		},
	})
}

func writeMessage(conn *websocket.Conn, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("failed to marshal message:", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Println("write:", err)
	}
}
