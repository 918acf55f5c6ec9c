package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reservetable/reservetable-go/internal/model"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents the JWT claims for ReserveTable authentication.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64      `json:"user_id"`
	Role   model.Role `json:"role"`
}

// GenerateToken creates a signed JWT for the given user identity. The token
// embeds the user id and role so protected routes can be gated without a
// database round trip; role and activation status are still re-checked
// against the store by the auth middleware.
func GenerateToken(userID int64, role model.Role, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "reservetable",
			Audience:  jwt.ClaimStrings{"reservetable-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a JWT token string, returning the
// claims if valid. Expiry is reported as ErrTokenExpired; every other
// failure (bad signature, wrong algorithm, malformed payload, wrong
// issuer or audience) is ErrTokenInvalid.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("reservetable"), jwt.WithAudience("reservetable-api"))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
