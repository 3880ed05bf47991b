package engine

import "github.com/google/uuid"

// generateID returns a fresh opaque session id.
func generateID() string {
	return uuid.NewString()
}
