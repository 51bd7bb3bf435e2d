package core

// Frame is a marshaled signaling message ready for the wire.
type Frame []byte

// SessionID identifies one live transport session. It is assigned by the
// adapter at connect time; a reconnect gets a fresh one.
type SessionID string

// SignalConnection abstracts the per-peer messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
