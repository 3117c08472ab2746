package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed unique identifier, e.g. "task_9f06c1...".
// Identifier formats carry no semantics; only uniqueness matters.
func NewID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
