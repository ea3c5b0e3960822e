package pkg

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateGameID - returns a random game identifier: a UUID in hex without dashes.
func GenerateGameID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
