package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// NewConnID generates an opaque id for a client connection.
func NewConnID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
