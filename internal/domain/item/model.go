package item

import (
	"time"

	"github.com/google/uuid"
)

// Item is one encrypted vault entry. The blob, IV and salt are opaque to the server.
type Item struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	TitleHMAC     *string
	EncryptedBlob []byte
	IV            []byte
	Salt          []byte
	Version       int
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Meta is the listing view of an item, without ciphertext.
type Meta struct {
	ID        uuid.UUID
	TitleHMAC *string
	Tags      []string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i *Item) Meta() Meta {
	return Meta{
		ID:        i.ID,
		TitleHMAC: i.TitleHMAC,
		Tags:      i.Tags,
		Version:   i.Version,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type Draft struct {
	TitleHMAC     *string
	EncryptedBlob []byte
	IV            []byte
	Salt          []byte
	Version       int
	Tags          []string
}

// Optional distinguishes a field left out of a patch from one set to a value, nil included.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Patch carries a partial update. Nil or unset fields keep their stored value.
// TitleHMAC and Tags may be cleared by setting them to nil.
type Patch struct {
	TitleHMAC     Optional[*string]
	EncryptedBlob []byte
	IV            []byte
	Salt          []byte
	Version       *int
	Tags          Optional[[]string]
}

func (p Patch) apply(i *Item) {
	if p.TitleHMAC.Set {
		i.TitleHMAC = p.TitleHMAC.Value
	}
	if p.EncryptedBlob != nil {
		i.EncryptedBlob = p.EncryptedBlob
	}
	if p.IV != nil {
		i.IV = p.IV
	}
	if p.Salt != nil {
		i.Salt = p.Salt
	}
	if p.Version != nil {
		i.Version = *p.Version
	}
	if p.Tags.Set {
		i.Tags = p.Tags.Value
	}
}
