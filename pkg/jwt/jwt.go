// Package jwt firma y verifica los tokens de sesión (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken firma, formato o claims incorrectos.
	ErrInvalidToken = errors.New("jwt: token inválido")
	// ErrExpiredToken token bien firmado pero vencido.
	ErrExpiredToken = errors.New("jwt: token expirado")
)

// Identity lo que el token afirma sobre el usuario. Role permite autorizar sin consultar la DB.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string // admin | comptable | commercial
}

type claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Signer emite tokens con un emisor y una vigencia fijos.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner construye el firmador. ttl negativo produce tokens ya vencidos (tests).
func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Sign firma id. Falla si el secreto está vacío.
func (s *Signer) Sign(id Identity) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("jwt: secret vacío")
	}
	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
		Role:      id.Role,
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar: %w", err)
	}
	return signed, nil
}

// Verify valida firma y vigencia y devuelve la identidad.
// Los errores son ErrExpiredToken o ErrInvalidToken (envolviendo la causa).
func Verify(secret, token string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("%w: secret vacío", ErrInvalidToken)
	}
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Identity{}, ErrExpiredToken
	case err != nil:
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	case c.UserID == "" || c.CompanyID == "":
		return Identity{}, fmt.Errorf("%w: faltan user_id o company_id", ErrInvalidToken)
	}
	return Identity{UserID: c.UserID, CompanyID: c.CompanyID, Role: c.Role}, nil
}
