// Package identity resolves bearer credentials to actors.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"shipping/internal/core/domain/model/actor"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the actor id travels in sub, the role in a
// private claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTGate verifies HS256 tokens signed with a shared secret.
type JWTGate struct {
	secret []byte
	parser *jwt.Parser
}

func NewJWTGate(secret []byte, issuer string) *JWTGate {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(5 * time.Second),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return &JWTGate{secret: secret, parser: jwt.NewParser(opts...)}
}

// Authorize implements ports.AuthorizationGate.
func (g *JWTGate) Authorize(_ context.Context, credential string) (actor.Actor, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return actor.Actor{}, errs.NewUnauthenticatedError("credential is missing")
	}

	var claims Claims
	_, err := g.parser.ParseWithClaims(credential, &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return actor.Actor{}, errs.NewCredentialExpiredError(err)
		}
		return actor.Actor{}, errs.NewUnauthenticatedErrorWithCause("credential cannot be verified", err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthenticatedErrorWithCause("subject is not an actor id", err)
	}
	role, err := actor.ParseRole(claims.Role)
	if err != nil {
		return actor.Actor{}, errs.NewUnauthenticatedErrorWithCause("role is not recognised", err)
	}

	return actor.NewActor(id, role)
}

// Signer issues tokens the gate accepts. It backs local tooling and tests;
// production tokens come from the identity provider.
type Signer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewSigner(secret []byte, issuer string) *Signer {
	return &Signer{secret: secret, issuer: issuer, now: time.Now}
}

func (s *Signer) Sign(a actor.Actor, ttl time.Duration) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	now := s.now()
	claims := Claims{
		Role: a.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID().String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
