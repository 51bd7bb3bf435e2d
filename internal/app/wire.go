package app

import (
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/mvoss/signalhub/internal/core"
)

// Event names of the signaling wire contract.
const (
	evtRoomCreated      = "room_created"
	evtRoomJoined       = "room_joined"
	evtFullRoom         = "full_room"
	evtNewUserJoined    = "new_user_joined"
	evtUserDisconnected = "user_disconnected"
	evtStartCall        = "start_call"
	evtWebRTCOffer      = "webrtc_offer"
	evtWebRTCAnswer     = "webrtc_answer"
	evtWebRTCCandidate  = "webrtc_ice_candidate"
)

// event is the outbound envelope. Every notification the router emits is one
// of these; unset fields stay off the wire.
type event struct {
	Type      string         `json:"type"`
	UserID    core.SessionID `json:"userId,omitempty"`
	SDP       *SDP           `json:"sdp,omitempty"`
	Candidate *Candidate     `json:"candidate,omitempty"`
}

// SDP mirrors the browser's RTCSessionDescription. The relay validates shape
// and passes the payload through unmodified.
type SDP struct {
	Type string `json:"type"`
	SDP  string `json:"sdp"`
}

func SDPFromPion(desc webrtc.SessionDescription) SDP {
	return SDP{Type: desc.Type.String(), SDP: desc.SDP}
}

func (s SDP) ToPion() (webrtc.SessionDescription, error) {
	var t webrtc.SDPType
	switch s.Type {
	case "offer":
		t = webrtc.SDPTypeOffer
	case "answer":
		t = webrtc.SDPTypeAnswer
	default:
		return webrtc.SessionDescription{}, fmt.Errorf("unsupported sdp type %q", s.Type)
	}
	if s.SDP == "" {
		return webrtc.SessionDescription{}, fmt.Errorf("empty sdp")
	}
	return webrtc.SessionDescription{Type: t, SDP: s.SDP}, nil
}

// Candidate mirrors the browser's RTCIceCandidate init dictionary.
type Candidate struct {
	Candidate        string  `json:"candidate"`
	SDPMid           *string `json:"sdpMid,omitempty"`
	SDPMLineIndex    *uint16 `json:"sdpMLineIndex,omitempty"`
	UsernameFragment *string `json:"usernameFragment,omitempty"`
}

func CandidateFromPion(init webrtc.ICECandidateInit) Candidate {
	return Candidate{
		Candidate:        init.Candidate,
		SDPMid:           init.SDPMid,
		SDPMLineIndex:    init.SDPMLineIndex,
		UsernameFragment: init.UsernameFragment,
	}
}

func (c Candidate) ToPion() webrtc.ICECandidateInit {
	return webrtc.ICECandidateInit{
		Candidate:        c.Candidate,
		SDPMid:           c.SDPMid,
		SDPMLineIndex:    c.SDPMLineIndex,
		UsernameFragment: c.UsernameFragment,
	}
}
