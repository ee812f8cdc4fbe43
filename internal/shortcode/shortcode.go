// Package shortcode generates and validates the compact tokens that identify
// stored target URLs.
package shortcode

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// alphabet is the URL-safe set used for generated codes. 64 symbols, so a
// random byte maps onto it without modulo bias.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Length is the size of generated codes.
const Length = 6

// MaxLen caps caller-supplied codes.
const MaxLen = 64

var codeRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Generate returns a random code of Length characters from the URL-safe
// alphabet, drawn from crypto/rand.
func Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[b&63]
	}
	return string(buf), nil
}

// Valid reports whether a caller-supplied code is acceptable.
func Valid(code string) bool {
	if code == "" || len(code) > MaxLen {
		return false
	}
	return codeRe.MatchString(code)
}
