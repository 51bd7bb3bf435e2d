package signal

import (
	"github.com/mvoss/signalhub/internal/core"
	"github.com/mvoss/signalhub/internal/domain"
)

// The relay handlers hand validated payloads straight to the router. The
// router resolves the target room from the sender's own association, so the
// roomId claimed here is a cross-check, not an authority.

func (ctl *SignalWSController) handleStartCall(sid core.SessionID, msg inboundMessage) {
	ctl.Router.OnStartCall(sid, domain.RoomID(msg.RoomID))
}

func (ctl *SignalWSController) handleOffer(sid core.SessionID, msg inboundMessage) {
	ctl.Router.OnOffer(sid, domain.RoomID(msg.RoomID), *msg.SDP)
}

func (ctl *SignalWSController) handleAnswer(sid core.SessionID, msg inboundMessage) {
	ctl.Router.OnAnswer(sid, domain.RoomID(msg.RoomID), *msg.SDP)
}

func (ctl *SignalWSController) handleCandidate(sid core.SessionID, msg inboundMessage) {
	ctl.Router.OnCandidate(sid, domain.RoomID(msg.RoomID), *msg.Candidate)
}
