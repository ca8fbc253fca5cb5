package utils

import (
	"crypto/rand"
	"log"
)

const tempPasswordLength = 12

// 64 characters so the low six bits of a random byte map uniformly.
const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// GenerateTemporaryPassword builds the initial password for accounts created
// by the timetable sync; users are expected to change it on first login.
// Bytes come from crypto/rand, so the password cannot be reconstructed from
// the time the sync ran.
func GenerateTemporaryPassword() string {
	raw := make([]byte, tempPasswordLength)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("🔥 Failed to read random bytes: %v", err)
	}
	for i, b := range raw {
		raw[i] = passwordAlphabet[b&0x3f]
	}
	return string(raw)
}
