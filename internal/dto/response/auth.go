package response

import (
	"time"

	"kyc-service/internal/data/entity"
)

type AuthResponse struct {
	UserID           string          `json:"user_id"`
	Email            string          `json:"email"`
	Role             entity.UserRole `json:"role"`
	AccessToken      string          `json:"access_token"`
	RefreshToken     string          `json:"refresh_token"`
	AccessExpiresAt  time.Time       `json:"access_expires_at"`
	RefreshExpiresAt time.Time       `json:"refresh_expires_at"`
}

type TokenPairResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}
