package item

import (
	"time"

	"github.com/google/uuid"

	"passvault/internal/app/server/api/http/fields"
	"passvault/internal/domain/item"
)

type ItemMeta struct {
	ID        uuid.UUID `json:"id"`
	TitleHMAC *string   `json:"title_hmac"`
	Tags      []string  `json:"tags"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemDetail adds the ciphertext fields. All byte fields travel as base64.
type ItemDetail struct {
	ItemMeta
	EncryptedBlob []byte `json:"encrypted_blob"`
	IV            []byte `json:"iv"`
	Salt          []byte `json:"salt"`
}

type ItemCreateRequest struct {
	TitleHMAC     *string       `json:"title_hmac,omitempty" nullable:"true" doc:"Client-computed HMAC of the title, used for search"`
	EncryptedBlob fields.Base64 `json:"encrypted_blob" doc:"Ciphertext, base64"`
	IV            fields.Base64 `json:"iv" doc:"Cipher IV, base64"`
	Salt          fields.Base64 `json:"salt" doc:"Key derivation salt, base64"`
	Version       int           `json:"version,omitempty" minimum:"0" doc:"Client format version, defaults to 1"`
	Tags          []string      `json:"tags,omitempty" nullable:"true"`
}

// ItemUpdateRequest fields left out keep their stored value.
// An explicit null clears title_hmac or tags.
type ItemUpdateRequest struct {
	TitleHMAC     fields.OmittableNullable[string]   `json:"title_hmac,omitempty" nullable:"true"`
	EncryptedBlob fields.Base64                      `json:"encrypted_blob,omitempty" nullable:"true"`
	IV            fields.Base64                      `json:"iv,omitempty" nullable:"true"`
	Salt          fields.Base64                      `json:"salt,omitempty" nullable:"true"`
	Version       *int                               `json:"version,omitempty" nullable:"true" minimum:"0"`
	Tags          fields.OmittableNullable[[]string] `json:"tags,omitempty" nullable:"true"`
}

type idInput struct {
	ID string `path:"id" doc:"Item id"`
}

type createInput struct {
	Body ItemCreateRequest
}

type updateInput struct {
	ID   string `path:"id" doc:"Item id"`
	Body ItemUpdateRequest
}

type listOutput struct {
	Body []ItemMeta
}

type detailOutput struct {
	Body ItemDetail
}

func metaFrom(m item.Meta) ItemMeta {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return ItemMeta{
		ID:        m.ID,
		TitleHMAC: m.TitleHMAC,
		Tags:      tags,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// MetaList converts domain listings, never returning nil so the JSON is [].
func MetaList(ms []item.Meta) []ItemMeta {
	out := make([]ItemMeta, 0, len(ms))
	for _, m := range ms {
		out = append(out, metaFrom(m))
	}
	return out
}

func detailFrom(i *item.Item) ItemDetail {
	return ItemDetail{
		ItemMeta:      metaFrom(i.Meta()),
		EncryptedBlob: i.EncryptedBlob,
		IV:            i.IV,
		Salt:          i.Salt,
	}
}

func (r ItemUpdateRequest) patch() item.Patch {
	p := item.Patch{
		EncryptedBlob: r.EncryptedBlob,
		IV:            r.IV,
		Salt:          r.Salt,
		Version:       r.Version,
	}
	if r.TitleHMAC.Sent {
		var title *string
		if !r.TitleHMAC.Null {
			title = &r.TitleHMAC.Value
		}
		p.TitleHMAC = item.Some(title)
	}
	if r.Tags.Sent {
		var tags []string
		if !r.Tags.Null {
			tags = r.Tags.Value
		}
		p.Tags = item.Some(tags)
	}
	return p
}
