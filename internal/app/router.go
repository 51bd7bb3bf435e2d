package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/mvoss/signalhub/internal/core"
	"github.com/mvoss/signalhub/internal/domain"
)

// SignalRouter turns inbound signaling messages into registry mutations and
// outbound notifications. It knows nothing about websockets; the adapter
// hands it validated messages and it fans out marshaled frames through the
// session table.
//
// Sender identity is always the transport-assigned session id. A roomId
// claimed in a relay payload is only honored when it matches the room the
// sender actually joined; anything else is dropped silently.
type SignalRouter struct {
	Rooms    *RoomRegistry
	Sessions *SessionTable
	Policy   Policy
}

func NewSignalRouter(rooms *RoomRegistry, sessions *SessionTable) *SignalRouter {
	return &SignalRouter{
		Rooms:    rooms,
		Sessions: sessions,
		Policy:   DropPolicy{},
	}
}

// OnJoin runs one admission attempt. A session that was already in a room is
// moved out of it first, so the single-room invariant holds.
func (rt *SignalRouter) OnJoin(sid core.SessionID, roomID domain.RoomID) {
	if _, ok := rt.Sessions.RoomOf(sid); ok {
		rt.leaveRooms(sid)
	}

	res := rt.Rooms.Admit(roomID, sid)
	log.Info().Str("module", "app.router").
		Str("sid", string(sid)).
		Str("room", string(roomID)).
		Str("outcome", res.Outcome.String()).
		Msg("join")

	switch res.Outcome {
	case OutcomeCreated:
		rt.Sessions.SetRoom(sid, roomID)
		rt.send(sid, event{Type: evtRoomCreated})
	case OutcomeJoined:
		rt.Sessions.SetRoom(sid, roomID)
		rt.send(sid, event{Type: evtRoomJoined})
		for _, peer := range res.Peers {
			rt.send(peer, event{Type: evtNewUserJoined, UserID: sid})
		}
	case OutcomeFull:
		rt.send(sid, event{Type: evtFullRoom})
	}
}

func (rt *SignalRouter) OnStartCall(sid core.SessionID, claimed domain.RoomID) {
	roomID, ok := rt.relayRoom(sid, claimed)
	if !ok {
		return
	}
	rt.relay(sid, roomID, event{Type: evtStartCall})
}

func (rt *SignalRouter) OnOffer(sid core.SessionID, claimed domain.RoomID, sdp SDP) {
	roomID, ok := rt.relayRoom(sid, claimed)
	if !ok {
		return
	}
	rt.relay(sid, roomID, event{Type: evtWebRTCOffer, UserID: sid, SDP: &sdp})
}

func (rt *SignalRouter) OnAnswer(sid core.SessionID, claimed domain.RoomID, sdp SDP) {
	roomID, ok := rt.relayRoom(sid, claimed)
	if !ok {
		return
	}
	rt.relay(sid, roomID, event{Type: evtWebRTCAnswer, UserID: sid, SDP: &sdp})
}

func (rt *SignalRouter) OnCandidate(sid core.SessionID, claimed domain.RoomID, cand Candidate) {
	roomID, ok := rt.relayRoom(sid, claimed)
	if !ok {
		return
	}
	rt.relay(sid, roomID, event{Type: evtWebRTCCandidate, UserID: sid, Candidate: &cand})
}

// OnLeave takes the session out of its room without dropping the transport.
func (rt *SignalRouter) OnLeave(sid core.SessionID) {
	rt.leaveRooms(sid)
}

// OnDisconnect removes the session from every room it was part of, notifies
// the remaining members of those rooms only, and forgets the session. Safe
// to call for sessions that never joined anything.
func (rt *SignalRouter) OnDisconnect(sid core.SessionID) {
	rt.leaveRooms(sid)
	rt.Sessions.Unbind(sid)
}

// leaveRooms walks the registry rather than the session association, so
// cleanup works even if the two ever diverge.
func (rt *SignalRouter) leaveRooms(sid core.SessionID) {
	for _, roomID := range rt.Rooms.RoomsOf(sid) {
		rt.Rooms.Remove(roomID, sid)
		for _, peer := range rt.Rooms.Peers(roomID, sid) {
			rt.send(peer, event{Type: evtUserDisconnected, UserID: sid})
		}
		log.Info().Str("module", "app.router").Str("sid", string(sid)).Str("room", string(roomID)).Msg("left room")
	}
	rt.Sessions.ClearRoom(sid)
}

// relayRoom resolves the room a relay actually targets: the sender's own
// association. Sessions that never joined, or that claim a different room,
// get nothing relayed.
func (rt *SignalRouter) relayRoom(sid core.SessionID, claimed domain.RoomID) (domain.RoomID, bool) {
	roomID, ok := rt.Sessions.RoomOf(sid)
	if !ok {
		return "", false
	}
	if claimed != "" && claimed != roomID {
		log.Debug().Str("module", "app.router").
			Str("sid", string(sid)).
			Str("claimed", string(claimed)).
			Str("actual", string(roomID)).
			Msg("relay room mismatch, dropping")
		return "", false
	}
	return roomID, true
}

// relay fans ev out to the room's current members minus the sender. Targets
// are recomputed from the registry at send time, never cached.
func (rt *SignalRouter) relay(sid core.SessionID, roomID domain.RoomID, ev event) {
	for _, peer := range rt.Rooms.Peers(roomID, sid) {
		rt.send(peer, ev)
	}
}

func (rt *SignalRouter) send(sid core.SessionID, ev event) {
	conn, ok := rt.Sessions.Conn(sid)
	if !ok {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Str("type", ev.Type).Msg("marshal event")
		return
	}
	if err := conn.TrySend(core.Frame(b)); err != nil {
		log.Warn().Err(err).Str("module", "app.router").Str("sid", string(sid)).Str("type", ev.Type).Msg("send failed")
		if rt.Policy != nil && rt.Policy.OnBackpressure(sid) == KickMember {
			rt.Sessions.Cancel(sid)
		}
	}
}
