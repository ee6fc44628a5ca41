package util

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

const (
	resetTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	resetTokenLength   = 32
	resetTokenTTL      = time.Hour
)

// GenerateResetToken returns a 32-character token drawn uniformly from the
// 62-symbol alphanumeric alphabet using crypto/rand.
func GenerateResetToken() (string, error) {
	var builder strings.Builder
	builder.Grow(resetTokenLength)
	max := big.NewInt(int64(len(resetTokenAlphabet)))
	for i := 0; i < resetTokenLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(resetTokenAlphabet[n.Int64()])
	}
	return builder.String(), nil
}

// ResetTokenExpiry returns the expiry for a token generated now.
func ResetTokenExpiry() time.Time {
	return time.Now().Add(resetTokenTTL)
}

// IsResetTokenValid reports whether expiry is set and strictly in the future.
func IsResetTokenValid(expiry *time.Time) bool {
	if expiry == nil {
		return false
	}
	return time.Now().Before(*expiry)
}
