package otp

import (
	"database/sql"
	"math/rand"
	"strings"
	"time"
)

// DefaultTTL bounds how long a stored code stays valid. Expiry is
// checked lazily at verify time, there is no background sweep.
const DefaultTTL = 15 * time.Minute

// Generator produces short numeric one-time codes. Codes are delivered
// over a side channel and are short-lived, so a non-cryptographic RNG
// is used; this is a known weakness of the scheme, not a strength.
type Generator interface {
	Generate(length int) string
}

type NumericGenerator struct{}

func NewNumericGenerator() *NumericGenerator {
	return &NumericGenerator{}
}

func (g *NumericGenerator) Generate(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(byte('0' + rand.Intn(10)))
	}
	return sb.String()
}

// Verify checks a provided code against the stored one. It fails when
// no code is stored, the code mismatches, or the code is older than
// ttl. It never clears the stored code: the caller clears it after a
// successful reset, so the check itself stays idempotent.
func Verify(stored sql.NullString, createdAt sql.NullTime, code string, ttl time.Duration, now time.Time) bool {
	if !stored.Valid || !createdAt.Valid {
		return false
	}
	if stored.String != code {
		return false
	}
	return now.Sub(createdAt.Time) <= ttl
}
