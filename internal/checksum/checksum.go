// Package checksum computes the content digests used to detect changed
// occasion files and to build ETags.
package checksum

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Sum returns the 64-bit xxHash of data as 16 hex digits.
func Sum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Match reports whether data still has the digest sum.
func Match(data []byte, sum string) bool {
	return Sum(data) == sum
}
