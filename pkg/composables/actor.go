package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iota-uz/certificates-backend/pkg/constants"
)

// Role is the actor role conveyed by the authentication layer. The set is
// closed: operators are admins, requesters are clients.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Actor identifies the authenticated principal a request runs on behalf of.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

var ErrNoActor = errors.New("no actor found in context")

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, constants.ActorKey, actor)
}

func UseActor(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(constants.ActorKey).(Actor)
	if !ok {
		return Actor{}, ErrNoActor
	}
	return actor, nil
}
