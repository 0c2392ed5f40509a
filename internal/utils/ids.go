package utils

import "github.com/google/uuid"

// IsValidID reports whether id is a well-formed entity reference.
func IsValidID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
