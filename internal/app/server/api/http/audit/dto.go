package audit

import (
	"time"

	"passvault/internal/domain/audit"
)

type Entry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	TS        time.Time      `json:"ts"`
	IPAddress *string        `json:"ip_address"`
	UserAgent *string        `json:"user_agent"`
	Details   map[string]any `json:"details"`
}

type logsOutput struct {
	Body []Entry
}

func entriesFrom(es []audit.Entry) []Entry {
	out := make([]Entry, 0, len(es))
	for _, e := range es {
		out = append(out, Entry{
			ID:        e.ID,
			Action:    e.Action,
			TS:        e.TS,
			IPAddress: e.IP,
			UserAgent: e.UserAgent,
			Details:   e.Details,
		})
	}
	return out
}
