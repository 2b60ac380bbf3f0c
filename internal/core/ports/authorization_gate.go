package ports

import (
	"context"

	"shipping/internal/core/domain/model/actor"
)

// AuthorizationGate resolves a raw credential to the actor behind it.
//
// It fails with errs.ErrUnauthenticated when the credential is missing or
// cannot be verified and with errs.ErrCredentialExpired when its validity
// window has passed. The role always comes from the credential.
type AuthorizationGate interface {
	Authorize(ctx context.Context, credential string) (actor.Actor, error)
}
