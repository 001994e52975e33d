// Package fields holds request body field types shared by the HTTP handlers.
package fields

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

var ErrNonCanonicalBase64 = errors.New("base64 must be canonical standard encoding without line breaks")

var null = []byte("null")

// Base64 is binary data sent as standard base64. Only input that re-encodes to
// the exact same text is accepted.
type Base64 []byte

func (b *Base64) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, null) {
		*b = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.ContainsAny(s, "\r\n") {
		return ErrNonCanonicalBase64
	}

	out, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}

	*b = out
	return nil
}

// OmittableNullable tracks whether a field was left out, sent as null, or sent with a value.
type OmittableNullable[T any] struct {
	Sent  bool
	Null  bool
	Value T
}

func (o *OmittableNullable[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	o.Sent = true
	if bytes.Equal(data, null) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Schema describes the field on the wire as the contained type.
func (o OmittableNullable[T]) Schema(r huma.Registry) *huma.Schema {
	return r.Schema(reflect.TypeOf(o.Value), true, "")
}
