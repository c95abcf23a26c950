// Package utils holds small helpers shared by the service layers.
package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random (v4) UUID string. It names registered grid
// params and tags requests that arrive without an X-Request-ID.
//
// Go Learning Note — "github.com/google/uuid":
// uuid.New() panics only if the system random source fails, which is why it
// needs no error return. Use uuid.NewRandom() where that failure should be
// handled instead.
func GenerateID() string {
	return uuid.New().String()
}
