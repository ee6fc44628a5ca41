package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nycbookings/api/internal/domain"
)

// SessionTTL is the fixed validity window for issued session tokens. There is
// no server-side revocation; a token stays valid until this window closes.
const SessionTTL = 7 * 24 * time.Hour

type Claims struct {
	UserID int64       `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTManager builds a manager around a process-wide symmetric secret.
// Callers must refuse to start without one; there is no insecure fallback.
func NewJWTManager(secret string, ttl time.Duration) (*JWTManager, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &JWTManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token embedding the user's identity and role.
func (m *JWTManager) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses a bearer token. Any failure — malformed input, bad signature,
// expiry — yields ok=false; callers must not distinguish the sub-reason.
func (m *JWTManager) Verify(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return nil, false
	}
	return claims, true
}
