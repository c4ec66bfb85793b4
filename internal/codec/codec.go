// Package codec converts attachment payloads to and from their text transport form.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrMalformedEncoding is returned when a payload is not valid padded base64.
var ErrMalformedEncoding = errors.New("malformed base64 payload")

// Encode returns the standard, padded base64 form of b.
func Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// Decode reverses Encode. The empty string decodes to an empty, non-nil slice.
func Decode(s string) ([]byte, error) {
	b, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}
