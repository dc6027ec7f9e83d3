package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TempIDPrefix marks client-generated ids for entities that have not been
// persisted yet. Exactly one canonical id replaces each temp id once the
// backend confirms the create.
const TempIDPrefix = "tmp_"

// NewID returns a canonical entity id.
func NewID() string {
	return uuid.New().String()
}

// NewTempID returns a placeholder id for a not-yet-persisted entity.
func NewTempID() string {
	return TempIDPrefix + uuid.New().String()
}

// IsTempID reports whether id denotes a not-yet-persisted entity.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}
