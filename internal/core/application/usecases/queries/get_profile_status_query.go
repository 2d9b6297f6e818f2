package queries

import (
	"context"
	"errors"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/errs"
	"supplyhub/internal/pkg/guard"
)

var ErrGetProfileStatusQueryIsNotConstructed = errors.New(
	"GetProfileStatusQuery must be created via NewGetProfileStatusQuery constructor",
)

// GetProfileStatusQuery answers whether the caller has finished onboarding
// for the role in their token.
type GetProfileStatusQuery struct {
	actor actor.Actor
	guard guard.ConstructorGuard
}

func NewGetProfileStatusQuery(a actor.Actor) (GetProfileStatusQuery, error) {
	if err := a.Validate(); err != nil {
		return GetProfileStatusQuery{}, err
	}
	return GetProfileStatusQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProfileStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileStatusQueryIsNotConstructed)
}

type ProfileStatus struct {
	Role      actor.Role
	Completed bool
}

type GetProfileStatusQueryHandler struct {
	directory ports.ActorDirectory
}

func NewGetProfileStatusQueryHandler(directory ports.ActorDirectory) GetProfileStatusQueryHandler {
	return GetProfileStatusQueryHandler{directory: directory}
}

func (h GetProfileStatusQueryHandler) Handle(ctx context.Context, query GetProfileStatusQuery) (ProfileStatus, error) {
	if err := query.Validate(); err != nil {
		return ProfileStatus{}, err
	}

	ok, err := h.directory.Exists(ctx, query.actor.Role(), query.actor.ID())
	if err != nil {
		return ProfileStatus{}, errs.NewStoreUnavailableError("look up profile", err)
	}
	return ProfileStatus{Role: query.actor.Role(), Completed: ok}, nil
}
