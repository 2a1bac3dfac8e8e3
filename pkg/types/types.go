package types

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Base64 is a byte string that serializes as unpadded base64url text, the
// encoding the network uses for every byte-valued field on the wire.
type Base64 []byte

// DecodeBase64 parses unpadded base64url text into a Base64 value.
func DecodeBase64(s string) (Base64, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("types: invalid base64url string: %w", err)
	}
	return Base64(b), nil
}

// String returns the unpadded base64url encoding of the bytes.
func (b Base64) String() string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// Empty reports whether the value holds no bytes.
func (b Base64) Empty() bool {
	return len(b) == 0
}

// MarshalJSON encodes the bytes as a base64url JSON string.
func (b Base64) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON decodes a base64url JSON string. Padded or non-URL-safe
// input is rejected.
func (b *Base64) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("types: base64 field is not a JSON string: %w", err)
	}
	decoded, err := DecodeBase64(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// Tag is a name/value pair attached to a transaction. Both sides are byte
// strings on the wire.
type Tag struct {
	Name  Base64 `json:"name"`
	Value Base64 `json:"value"`
}

// NewTag builds a tag from UTF-8 text.
func NewTag(name, value string) Tag {
	return Tag{Name: Base64(name), Value: Base64(value)}
}

// Pair returns the tag as the two-element [name, value] byte-string list
// used when a transaction is canonically hashed.
func (t Tag) Pair() [][]byte {
	return [][]byte{t.Name, t.Value}
}
