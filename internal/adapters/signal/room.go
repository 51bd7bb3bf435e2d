package signal

import (
	"github.com/rs/zerolog/log"

	"github.com/mvoss/signalhub/internal/core"
	"github.com/mvoss/signalhub/internal/domain"
)

func (ctl *SignalWSController) handleJoin(sid core.SessionID, conn *WsSignalConn, msg inboundMessage) {
	roomID, err := domain.ParseRoomID(msg.RoomID)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad room id")
		ctl.sendError(conn, "bad_room_id")
		return
	}

	if !ctl.Limiter.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Msg("join rate limit hit")
		ctl.sendError(conn, "too_many_joins")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(roomID)).Msg("join")
	ctl.Router.OnJoin(sid, roomID)
}

// handleLeave exits the current room; the connection stays open.
func (ctl *SignalWSController) handleLeave(sid core.SessionID, conn *WsSignalConn) {
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("leave")
	ctl.Router.OnLeave(sid)
	ctl.sendJSON(conn, map[string]any{
		"type": "left",
	})
}
