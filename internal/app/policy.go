package app

import "github.com/mvoss/signalhub/internal/core"

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a session whose send buffer is full.
type Policy interface {
	OnBackpressure(sid core.SessionID) BackpressureAction
}

// DropPolicy drops the frame and keeps the session. Signaling messages are
// small and the client retries negotiation, so this is the default.
type DropPolicy struct{}

func (DropPolicy) OnBackpressure(core.SessionID) BackpressureAction { return DropFrame }

// KickPolicy tears the slow session down instead.
type KickPolicy struct{}

func (KickPolicy) OnBackpressure(core.SessionID) BackpressureAction { return KickMember }
