package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string. ulid.Make reads from crypto/rand, which
// is sufficient here: IDs only need to be unique, not monotonic, and the write
// rate of a telemetry backend never approaches the per-millisecond entropy limit.
func NewULID() string {
	return ulid.Make().String()
}
