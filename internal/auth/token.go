package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Token verification outcomes. The guard collapses both into a single
// externally visible 401; callers inside the process may branch on them.
var (
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("token malformed")
)

// DefaultTokenTTL is applied when no TTL is configured.
const DefaultTokenTTL = 160 * time.Second

// TokenManager issues and verifies signed, expiring JWTs. It is stateless:
// tokens are never stored server side, so a token is valid exactly until its
// expiry or until the signing secret changes.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlSeconds int) *TokenManager {
	ttl := DefaultTokenTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims is the signed token payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject with the configured TTL.
func (tm *TokenManager) Issue(username string) (string, time.Time, error) {
	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
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

// Verify decodes and checks the signature and expiry. Every failure on
// user-controlled input comes back classified: ErrExpiredToken when the
// token is past its expiry, ErrMalformedToken for anything else (bad
// encoding, tampered payload, wrong algorithm, empty input).
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrMalformedToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// Refresh verifies the token and issues a new one for the same subject with
// a fresh TTL. Failures classify exactly as Verify does.
func (tm *TokenManager) Refresh(tokenStr string) (string, time.Time, error) {
	claims, err := tm.Verify(tokenStr)
	if err != nil {
		return "", time.Time{}, err
	}
	if claims.Username == "" {
		return "", time.Time{}, ErrMalformedToken
	}
	return tm.Issue(claims.Username)
}
