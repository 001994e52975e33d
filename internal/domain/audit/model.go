package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionUserRegistered  = "user_registered"
	ActionUserLogin       = "user_login"
	ActionUserLoginFailed = "user_login_failed"
	ActionItemCreated     = "item_created"
	ActionItemUpdated     = "item_updated"
	ActionItemDeleted     = "item_deleted"
	ActionLinkCreated     = "ot_link_created"
	ActionLinkFetched     = "ot_link_fetched"
	ActionLinkDeleted     = "ot_link_deleted"
)

// DefaultListLimit caps how many entries a user gets back from List.
const DefaultListLimit = 200

// Entry is one immutable audit row. UserID is nil for anonymous actions.
type Entry struct {
	ID        int64
	UserID    *uuid.UUID
	Action    string
	IP        *string
	UserAgent *string
	Details   map[string]any
	TS        time.Time
}
