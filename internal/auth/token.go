package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ZvonimirSimic/weather-service/internal/config"
	"github.com/ZvonimirSimic/weather-service/internal/domain"
)

// TokenManager issues and validates session JWTs. Issuing and verification
// share the same secret, issuer and audience; expiry is checked with zero
// clock-skew leeway.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      cfg.TokenTTL(),
	}
}

// Claims describes the JWT payload. UID carries the numeric user id as a
// decimal string; sub carries the username.
type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// UserID parses the uid claim.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.UID, 10, 64)
}

// GenerateToken signs a JWT for the user. Each call embeds a fresh jti, so
// repeated logins yield distinct tokens.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UID: strconv.FormatInt(user.ID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates signature, expiry, issuer and audience, and returns
// the claims. Any failure leaves the caller with no claims at all.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
