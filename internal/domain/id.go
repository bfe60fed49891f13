package domain

import "github.com/google/uuid"

// ValidID reports whether id can name a stored record. Repositories treat
// anything else as not found instead of sending it to the database.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
