package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"contactbook/infrastructure"
)

// Purpose tags what an issued token may be used for. An operation must
// reject any token whose purpose does not match its own.
type Purpose string

const (
	PurposeAccess       Purpose = "access"
	PurposeRefresh      Purpose = "refresh"
	PurposeVerification Purpose = "verification"
)

type Claims struct {
	UserID  string  `json:"user_id"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// Codec signs and verifies the tokens used across the auth flow. Tokens are
// stateless: validity derives from the HMAC signature and the embedded expiry.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

func (c *Codec) Encode(userID uuid.UUID, purpose Purpose, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  userID.String(),
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the claims. Expiry is
// exclusive: a token expiring exactly now is already invalid.
func (c *Codec) Decode(raw string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, infrastructure.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, infrastructure.ErrTokenExpired
		}
		return nil, infrastructure.ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, infrastructure.ErrInvalidToken
	}
	if claims.UserID == "" || claims.Purpose == "" {
		return nil, infrastructure.ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, infrastructure.ErrInvalidToken
	}

	return claims, nil
}
