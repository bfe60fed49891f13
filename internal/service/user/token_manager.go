package user

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenManager issues and verifies HS256 bearer tokens carrying a userId claim.
type tokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTokenManager(secret []byte, ttl time.Duration) *tokenManager {
	return &tokenManager{secret: secret, ttl: ttl, now: time.Now}
}

func (m *tokenManager) Issue(userID string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"iat":    issuedAt.Unix(),
		"exp":    expiresAt.Unix(),
	})
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *tokenManager) Validate(token string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", err
	}
	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", errors.New("missing userId claim")
	}
	return userID, nil
}
