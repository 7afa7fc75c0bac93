package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and checks the bearer tokens order-intake clients
// present. Tokens are HS256 with a fixed issuer.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

type Claims struct {
	ClientID string `json:"cid"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// Issue signs a token for clientID. A zero ttl issues a token without expiry.
func (tm *TokenManager) Issue(clientID string) (string, time.Time, error) {
	now := tm.now()
	claims := Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tm.issuer,
			Subject:  clientID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	var exp time.Time
	if tm.ttl > 0 {
		exp = now.Add(tm.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// Parse validates signature, algorithm, issuer and expiry.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil || claims.ClientID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
