package trade

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID generates a proposal ID on the client side, before any server has
// been consulted. Two teams proposing in the same second must not collide, so
// the timestamp is padded with 48 bits of randomness rather than a counter.
func NewID() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return fmt.Sprintf("trade_%d_%s", time.Now().Unix(), hex.EncodeToString(b))
}
