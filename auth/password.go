package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const saltLength = 16

// argon2id parameters; changing them invalidates every stored hash
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// GenerateSalt returns a fresh random per-user salt.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a hash from the password and salt.
// The same (password, salt) pair always yields the same output.
func HashPassword(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.RawStdEncoding.EncodeToString(key)
}

// VerifyPassword recomputes the hash for the candidate password and
// compares it to the stored one in constant time.
func VerifyPassword(password, salt, expectedHash string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(expectedHash)) == 1
}
