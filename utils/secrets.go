// utils/secrets.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewPaymentSecret returns the opaque token that lets an unauthenticated
// client confirm a payment against a ticket: 32 random bytes, hex-encoded.
func NewPaymentSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate payment secret")
	}
	return hex.EncodeToString(key)
}
