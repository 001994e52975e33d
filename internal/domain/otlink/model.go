package otlink

import (
	"time"

	"github.com/google/uuid"
)

type State int

const (
	StateActive State = iota
	StateExpired
	StateConsumed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExpired:
		return "expired"
	case StateConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Link is a shareable encrypted payload. Anyone holding the id can fetch it while it is active.
type Link struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	EncryptedPayload []byte
	IV               []byte
	Salt             []byte
	Expiry           time.Time
	SingleUse        bool
	Used             bool
	CreatedAt        time.Time
}

// State reports the lifecycle state at now. Consumed wins over expired.
func (l *Link) State(now time.Time) State {
	if l.Used {
		return StateConsumed
	}
	if !now.Before(l.Expiry) {
		return StateExpired
	}
	return StateActive
}

type Draft struct {
	EncryptedPayload []byte
	IV               []byte
	Salt             []byte
	Expiry           time.Time
	SingleUse        bool
}
