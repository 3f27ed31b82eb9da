// Package session manages live map sessions: HTTP lifecycle, WebSocket
// clients, command dispatch and snapshot persistence.
package session

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"vtt-session-engine/config"
	"vtt-session-engine/game"
	"vtt-session-engine/store"
	"vtt-session-engine/tools"
)

// Session is one shared table: its map state, the master user and the
// connected clients.
type Session struct {
	ID       string
	MasterID string
	State    game.State
	Version  int
	Clients  map[*websocket.Conn]*client
	dirty    bool
}

// client is one connected participant: identity plus the per-connection tool
// controller.
type client struct {
	actor game.Actor
	name  string
	ctrl  *tools.Controller
}

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	cfg      config.Config

	store         *store.Store
	snapshotEvery time.Duration
	stopSnapshots chan struct{}
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
	}
}

// Reset drops every session. Test helper.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*Session)
}

type createSessionRequest struct {
	MasterID  string `json:"masterId"`
	Dimension int    `json:"dimension"`
}

func (m *Manager) CreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := c.BodyParser(&req); err != nil || req.MasterID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "masterId is required",
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.cfg.MaxSessions {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "maximum number of sessions reached",
		})
	}

	dimension := req.Dimension
	if dimension < 1 {
		dimension = m.cfg.DefaultGridDimension
	}

	id := uuid.NewString()
	m.sessions[id] = &Session{
		ID:       id,
		MasterID: req.MasterID,
		State:    game.NewState(dimension),
		Clients:  make(map[*websocket.Conn]*client),
	}

	log.Println("session created:", id)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sessionId": id,
	})
}

func (m *Manager) GetSession(c *fiber.Ctx) error {
	id := c.Params("id")

	m.mu.Lock()
	sess, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	return c.JSON(fiber.Map{
		"sessionId": sess.ID,
		"masterId":  sess.MasterID,
		"dimension": sess.State.Dimension,
	})
}

func (m *Manager) DeleteSession(c *fiber.Ctx) error {
	id := c.Params("id")

	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		for conn := range sess.Clients {
			conn.Close()
		}
		delete(m.sessions, id)
	}
	st := m.store
	m.mu.Unlock()

	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "session not found",
		})
	}

	if st != nil {
		if err := st.Delete(id); err != nil {
			log.Printf("warning: failed to delete snapshot for %s: %v", id, err)
		}
	}

	return c.JSON(fiber.Map{"deleted": id})
}

// snapshot is the persisted form of a session.
type snapshot struct {
	MasterID string     `json:"masterId"`
	State    game.State `json:"state"`
}

// SetStore attaches snapshot persistence.
func (m *Manager) SetStore(s *store.Store, interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = s
	if interval <= 0 {
		interval = 30 * time.Second
	}
	m.snapshotEvery = interval
}

// RestoreSessions loads every stored snapshot back into memory.
func (m *Manager) RestoreSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil {
		return
	}

	snapshots, err := m.store.LoadAll()
	if err != nil {
		log.Printf("warning: failed to restore sessions: %v", err)
		return
	}

	for id, data := range snapshots {
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			log.Printf("warning: skipping corrupt snapshot for %s: %v", id, err)
			continue
		}
		m.sessions[id] = &Session{
			ID:       id,
			MasterID: snap.MasterID,
			State:    snap.State,
			Clients:  make(map[*websocket.Conn]*client),
		}
	}

	if len(snapshots) > 0 {
		log.Printf("restored %d session(s)", len(m.sessions))
	}
}

// StartPeriodicSnapshots saves changed sessions on a fixed interval until
// StopPeriodicSnapshots is called.
func (m *Manager) StartPeriodicSnapshots() {
	m.mu.Lock()
	if m.store == nil || m.stopSnapshots != nil {
		m.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.stopSnapshots = stop
	interval := m.snapshotEvery
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.saveDirtySessions()
			case <-stop:
				m.saveDirtySessions()
				return
			}
		}
	}()
}

func (m *Manager) StopPeriodicSnapshots() {
	m.mu.Lock()
	stop := m.stopSnapshots
	m.stopSnapshots = nil
	m.mu.Unlock()

	if stop != nil {
		close(stop)
	}
}

func (m *Manager) saveDirtySessions() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store == nil {
		return
	}

	for id, sess := range m.sessions {
		if !sess.dirty {
			continue
		}
		data, err := json.Marshal(snapshot{MasterID: sess.MasterID, State: sess.State})
		if err != nil {
			log.Printf("warning: failed to marshal session %s: %v", id, err)
			continue
		}
		if err := m.store.Save(id, data); err != nil {
			log.Printf("warning: failed to save snapshot for %s: %v", id, err)
			continue
		}
		sess.dirty = false
	}
}
