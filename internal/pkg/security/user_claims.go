package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret         = []byte("quill-dev-secret")
	jwtExpirationTime = time.Hour * 24
)

// Configure overrides the signing material from the loaded config; the
// defaults above only exist so tooling and tests can mint tokens.
func Configure(secret string, expireHours int) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if expireHours > 0 {
		jwtExpirationTime = time.Duration(expireHours) * time.Hour
	}
}

// UserClaims carries the business identity embedded in every token.
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
