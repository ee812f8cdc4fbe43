package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, sized for interactive logins.
const (
	saltLen     = 16
	argonTime   = 1
	argonMemory = 64 * 1024
	argonLanes  = 4
	argonKeyLen = 32
)

// HashPassword derives an argon2id hash from the password under a fresh
// random salt. Both values are hex-encoded for storage alongside the user.
func HashPassword(password string) (hash, salt string, err error) {
	rawSalt := make([]byte, saltLen)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonLanes, argonKeyLen)
	return hex.EncodeToString(key), hex.EncodeToString(rawSalt), nil
}

// VerifyPassword reports whether the password matches the stored hash/salt
// pair. Comparison is constant-time.
func VerifyPassword(password, hash, salt string) bool {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), rawSalt, argonTime, argonMemory, argonLanes, argonKeyLen)
	return subtle.ConstantTimeCompare(got, want) == 1
}
