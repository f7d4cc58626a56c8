package password

import (
	"math/rand"
	"strings"
)

// Symbols is the punctuation set the policy accepts.
const Symbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const MinLength = 8

// Validate reports whether the password satisfies the policy:
// at least MinLength characters with one uppercase, one lowercase,
// one digit and one symbol from Symbols. Pure function.
func Validate(password string) bool {
	if len(password) < MinLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(Symbols, c):
			symbol = true
		}
	}

	return upper && lower && digit && symbol
}

// Generate returns a random alphanumeric password of the given length,
// issued to accepted applicants. It is sent once by email and only its
// hash is persisted.
func Generate(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(alphanumeric[rand.Intn(len(alphanumeric))])
	}
	return sb.String()
}
