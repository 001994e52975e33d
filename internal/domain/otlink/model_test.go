package otlink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLink_State(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		link Link
		want State
	}{
		{name: "active", link: Link{Expiry: now.Add(time.Minute)}, want: StateActive},
		{name: "expiry equals now", link: Link{Expiry: now}, want: StateExpired},
		{name: "expired", link: Link{Expiry: now.Add(-time.Second)}, want: StateExpired},
		{name: "consumed", link: Link{Expiry: now.Add(time.Minute), Used: true}, want: StateConsumed},
		{name: "consumed and expired", link: Link{Expiry: now.Add(-time.Minute), Used: true}, want: StateConsumed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.link.State(now))
			assert.Equal(t, tt.want.String(), tt.link.State(now).String())
		})
	}
}
