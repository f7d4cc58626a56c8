package otp

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	g := NewNumericGenerator()

	for _, length := range []int{4, 6, 8} {
		code := g.Generate(length)
		require.Len(t, code, length)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestVerify(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	stored := sql.NullString{String: "123456", Valid: true}
	fresh := sql.NullTime{Time: now.Add(-time.Minute), Valid: true}

	require.True(t, Verify(stored, fresh, "123456", DefaultTTL, now))
	require.False(t, Verify(stored, fresh, "654321", DefaultTTL, now))

	// no stored code
	require.False(t, Verify(sql.NullString{}, fresh, "123456", DefaultTTL, now))
	require.False(t, Verify(stored, sql.NullTime{}, "123456", DefaultTTL, now))

	// lazy expiry: a code exactly at the boundary still passes, one
	// second beyond it does not
	boundary := sql.NullTime{Time: now.Add(-DefaultTTL), Valid: true}
	require.True(t, Verify(stored, boundary, "123456", DefaultTTL, now))

	stale := sql.NullTime{Time: now.Add(-DefaultTTL - time.Second), Valid: true}
	require.False(t, Verify(stored, stale, "123456", DefaultTTL, now))
}
