// Package token issues and verifies the signed credential that proves a
// claimed identity. Issuance trusts the supplied claim entirely; legitimacy
// of the identity is outside this layer.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	Email string `json:"email"`

	jwtlib.RegisteredClaims
}

type Service interface {
	Issue(email string) (string, error)
	Verify(tokenString string) (Claims, error)
	Validity() time.Duration
}

type HMACService struct {
	secret   []byte
	validity time.Duration

	now func() time.Time
}

func NewHMACService(secret string, validity time.Duration) *HMACService {
	return &HMACService{
		secret:   []byte(secret),
		validity: validity,
		now:      time.Now,
	}
}

func (s *HMACService) Validity() time.Duration {
	return s.validity
}

func (s *HMACService) Issue(email string) (string, error) {
	if len(s.secret) == 0 || s.validity <= 0 {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.validity)),
			Subject:   email,
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) Verify(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return s.now() }),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
