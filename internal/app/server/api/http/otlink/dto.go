package otlink

import (
	"time"

	"github.com/google/uuid"

	"passvault/internal/app/server/api/http/fields"
	"passvault/internal/domain/otlink"
)

type LinkCreateRequest struct {
	EncryptedPayload fields.Base64 `json:"encrypted_payload" doc:"Ciphertext, base64"`
	Salt             fields.Base64 `json:"salt" doc:"Key derivation salt, base64"`
	IV               fields.Base64 `json:"iv" doc:"Cipher IV, base64"`
	Expiry           time.Time     `json:"expiry" doc:"Instant after which the link is dead"`
	SingleUse        *bool         `json:"single_use,omitempty" doc:"Consume on first fetch, defaults to true"`
}

type Link struct {
	ID               uuid.UUID `json:"id"`
	EncryptedPayload []byte    `json:"encrypted_payload"`
	Salt             []byte    `json:"salt"`
	IV               []byte    `json:"iv"`
	Expiry           time.Time `json:"expiry"`
	SingleUse        bool      `json:"single_use"`
	Used             bool      `json:"used"`
	CreatedAt        time.Time `json:"created_at"`
}

type createInput struct {
	Body LinkCreateRequest
}

type idInput struct {
	ID string `path:"id" doc:"Link id"`
}

type linkOutput struct {
	Body Link
}

func linkFrom(l *otlink.Link) Link {
	return Link{
		ID:               l.ID,
		EncryptedPayload: l.EncryptedPayload,
		Salt:             l.Salt,
		IV:               l.IV,
		Expiry:           l.Expiry,
		SingleUse:        l.SingleUse,
		Used:             l.Used,
		CreatedAt:        l.CreatedAt,
	}
}
