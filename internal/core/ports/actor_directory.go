package ports

import (
	"context"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
)

// ActorDirectory answers whether a profile exists for an identity in a role.
type ActorDirectory interface {
	Exists(ctx context.Context, role actor.Role, id kernel.UUID) (bool, error)
}
