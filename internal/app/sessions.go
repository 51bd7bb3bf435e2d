package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mvoss/signalhub/internal/core"
	"github.com/mvoss/signalhub/internal/domain"
)

type sessionEntry struct {
	RoomID domain.RoomID
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// SessionTable tracks every live connection and its room association.
// The association is a routing shortcut; the RoomRegistry remains the
// source of truth for membership.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[core.SessionID]*sessionEntry)}
}

func (t *SessionTable) Bind(sid core.SessionID, conn core.SignalConnection, cancel context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("bound session")
}

func (t *SessionTable) Unbind(sid core.SessionID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, sid)
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("unbound session")
}

func (t *SessionTable) Conn(sid core.SessionID) (core.SignalConnection, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if e, ok := t.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

// RoomOf returns the room the session joined, if any.
func (t *SessionTable) RoomOf(sid core.SessionID) (domain.RoomID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.sessions[sid]
	if !ok || e.RoomID == "" {
		return "", false
	}
	return e.RoomID, true
}

func (t *SessionTable) SetRoom(sid core.SessionID, roomID domain.RoomID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.sessions[sid]
	if !ok {
		return false
	}
	e.RoomID = roomID
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Str("room", string(roomID)).Msg("room association set")
	return true
}

func (t *SessionTable) ClearRoom(sid core.SessionID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e, ok := t.sessions[sid]; ok {
		e.RoomID = ""
	}
}

// Cancel fires the session's cancel func, tearing down its pumps.
func (t *SessionTable) Cancel(sid core.SessionID) bool {
	t.mu.RLock()
	e, ok := t.sessions[sid]
	t.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("canceled session")
	return true
}
