// Package utils holds small helpers shared by the mesh core and the service
// around it: great-circle distance and identifier generation.
//
// Go Learning Note — "pkg/" Directory Convention:
// Code under pkg/ is intended to be importable by external projects (unlike
// internal/ which is compiler-enforced private). Nothing here depends on the
// rest of the module, so the distance helpers can be reused on their own.
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a random identifier with the given prefix, for example
// "pt_9f1c...". An empty prefix yields a bare UUID string.
//
// Go Learning Note — "github.com/google/uuid":
// uuid.NewString() creates a v4 (random) UUID. It needs no coordination
// between processes, which suits ids minted by request handlers.
func GenerateID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// IsGeneratedID reports whether id looks like a value GenerateID produced
// with the given prefix.
func IsGeneratedID(prefix, id string) bool {
	if prefix != "" {
		rest, ok := strings.CutPrefix(id, prefix+"_")
		if !ok {
			return false
		}
		id = rest
	}
	_, err := uuid.Parse(id)
	return err == nil
}
