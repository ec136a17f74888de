package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateUnsubscribeToken generates a 32-character hex token for newsletter
// unsubscribe links.
func GenerateUnsubscribeToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
