package app

import (
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mvoss/signalhub/internal/core"
	"github.com/mvoss/signalhub/internal/domain"
)

// AdmitOutcome is the result of one admission attempt. "Full" is a normal
// outcome, not an error.
type AdmitOutcome int

const (
	OutcomeCreated AdmitOutcome = iota
	OutcomeJoined
	OutcomeFull
)

func (o AdmitOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeJoined:
		return "joined"
	case OutcomeFull:
		return "full"
	}
	return "unknown"
}

// AdmitResult carries the outcome plus, on Joined, the members that were
// already in the room before this admission.
type AdmitResult struct {
	Outcome AdmitOutcome
	Peers   []core.SessionID
}

type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"member_count"`
}

// RoomRegistry owns the room id -> members mapping and is the single source
// of truth for membership. Rooms are created on first admit and deleted when
// their last member leaves; an empty room is never retained.
type RoomRegistry struct {
	mu       sync.RWMutex
	capacity int
	rooms    map[domain.RoomID][]core.SessionID
}

func NewRoomRegistry(capacity int) *RoomRegistry {
	if capacity < 1 {
		capacity = 1
	}
	return &RoomRegistry{
		capacity: capacity,
		rooms:    make(map[domain.RoomID][]core.SessionID),
	}
}

func (r *RoomRegistry) Capacity() int { return r.capacity }

// Admit adds sid to the room, creating it if needed. Check-and-append runs
// under one lock so concurrent admits can neither both observe Created nor
// push membership above capacity.
func (r *RoomRegistry) Admit(roomID domain.RoomID, sid core.SessionID) AdmitResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		r.rooms[roomID] = []core.SessionID{sid}
		log.Info().Str("module", "app.registry").Str("room", string(roomID)).Str("sid", string(sid)).Msg("room created")
		return AdmitResult{Outcome: OutcomeCreated}
	}
	if len(members) >= r.capacity {
		return AdmitResult{Outcome: OutcomeFull}
	}
	peers := slices.Clone(members)
	r.rooms[roomID] = append(members, sid)
	log.Info().Str("module", "app.registry").Str("room", string(roomID)).Str("sid", string(sid)).Int("members", len(members)+1).Msg("member admitted")
	return AdmitResult{Outcome: OutcomeJoined, Peers: peers}
}

// Peers returns the current members of roomID minus the excluded session.
// Unknown rooms yield an empty slice.
func (r *RoomRegistry) Peers(roomID domain.RoomID, excluding core.SessionID) []core.SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := r.rooms[roomID]
	out := make([]core.SessionID, 0, len(members))
	for _, sid := range members {
		if sid != excluding {
			out = append(out, sid)
		}
	}
	return out
}

// Contains reports whether sid is currently a member of roomID.
func (r *RoomRegistry) Contains(roomID domain.RoomID, sid core.SessionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.rooms[roomID], sid)
}

// Remove takes sid out of roomID and deletes the room if it became empty.
// Idempotent; a no-op when room or member is absent.
func (r *RoomRegistry) Remove(roomID domain.RoomID, sid core.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomID]
	if !ok {
		return
	}
	idx := slices.Index(members, sid)
	if idx < 0 {
		return
	}
	members = slices.Delete(members, idx, idx+1)
	if len(members) == 0 {
		delete(r.rooms, roomID)
		log.Info().Str("module", "app.registry").Str("room", string(roomID)).Msg("room deleted")
		return
	}
	r.rooms[roomID] = members
	log.Info().Str("module", "app.registry").Str("room", string(roomID)).Str("sid", string(sid)).Int("members", len(members)).Msg("member removed")
}

// RoomsOf returns every room sid belongs to. With single-room membership
// this is at most one id, but disconnect cleanup walks it regardless so the
// registry stays authoritative.
func (r *RoomRegistry) RoomsOf(sid core.SessionID) []domain.RoomID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.RoomID
	for roomID, members := range r.rooms {
		if slices.Contains(members, sid) {
			out = append(out, roomID)
		}
	}
	return out
}

func (r *RoomRegistry) List() []RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RoomInfo, 0, len(r.rooms))
	for roomID, members := range r.rooms {
		out = append(out, RoomInfo{ID: roomID, MemberCount: len(members)})
	}
	return out
}
