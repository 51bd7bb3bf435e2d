package signal

import (
	"encoding/json"
	"fmt"

	"github.com/mvoss/signalhub/internal/app"
)

type messageType string

const (
	msgJoin      messageType = "join"
	msgStartCall messageType = "start_call"
	msgOffer     messageType = "webrtc_offer"
	msgAnswer    messageType = "webrtc_answer"
	msgCandidate messageType = "webrtc_ice_candidate"
	msgLeave     messageType = "leave"
	msgPing      messageType = "ping"
)

// inboundMessage is the client-to-server envelope. Unknown fields are
// tolerated (browser clients attach extras), unknown types are not.
type inboundMessage struct {
	Type      messageType    `json:"type"`
	RoomID    string         `json:"roomId,omitempty"`
	SDP       *app.SDP       `json:"sdp,omitempty"`
	Candidate *app.Candidate `json:"candidate,omitempty"`
}

func parseInbound(data []byte) (inboundMessage, error) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return inboundMessage{}, err
	}
	if err := msg.validate(); err != nil {
		return inboundMessage{}, err
	}
	return msg, nil
}

func (m inboundMessage) validate() error {
	switch m.Type {
	case msgJoin, msgStartCall:
		if m.RoomID == "" {
			return fmt.Errorf("%s message missing roomId", m.Type)
		}
	case msgOffer, msgAnswer:
		if m.RoomID == "" {
			return fmt.Errorf("%s message missing roomId", m.Type)
		}
		if m.SDP == nil {
			return fmt.Errorf("%s message missing sdp", m.Type)
		}
		if _, err := m.SDP.ToPion(); err != nil {
			return fmt.Errorf("%s message: %w", m.Type, err)
		}
		want := "offer"
		if m.Type == msgAnswer {
			want = "answer"
		}
		if m.SDP.Type != want {
			return fmt.Errorf("%s message has sdp.type=%q", m.Type, m.SDP.Type)
		}
	case msgCandidate:
		if m.RoomID == "" {
			return fmt.Errorf("%s message missing roomId", m.Type)
		}
		if m.Candidate == nil || m.Candidate.Candidate == "" {
			return fmt.Errorf("%s message missing candidate", m.Type)
		}
	case msgLeave, msgPing:
		// no payload
	default:
		return fmt.Errorf("unsupported message type %q", m.Type)
	}
	return nil
}
