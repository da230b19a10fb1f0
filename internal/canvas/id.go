package canvas

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random 16-character lowercase hex id, the format the
// viewer uses for nodes it creates.
func NewID() string {
	return hexUUID()[:16]
}

// ShortID returns a random 8-character lowercase hex id.
func ShortID() string {
	return hexUUID()[:8]
}

func hexUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
