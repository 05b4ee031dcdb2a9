package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims carry the actor's identity and role so the policy layer can
// resolve the actor without a second credential lookup.
type Claims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	TokenType string `json:"typ"`
}

type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(cfg JWTConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.Secret),
		accessTTL:  time.Duration(cfg.AccessExpiryMins) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshExpiryHours) * time.Hour,
	}
}

func (tm *TokenManager) GenerateAccessToken(userID uuid.UUID, role string) (string, time.Time, error) {
	return tm.generate(userID, role, TokenTypeAccess, tm.accessTTL)
}

func (tm *TokenManager) GenerateRefreshToken(userID uuid.UUID, role string) (string, time.Time, error) {
	return tm.generate(userID, role, TokenTypeRefresh, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID uuid.UUID, role, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:      role,
		TokenType: tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", tokenType, err)
	}

	return signed, expiresAt, nil
}

// ParseToken validates the signature and expiry and returns the claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &claims, nil
}

// SubjectID parses the user id carried in the subject claim.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
