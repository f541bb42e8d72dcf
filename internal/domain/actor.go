package domain

import (
	"context"
	"fmt"
)

type Role string

const (
	RoleYouth    Role = "youth"
	RoleEmployer Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleYouth || r == RoleEmployer
}

// Actor is the authenticated caller. It is either a YouthActor or an
// EmployerActor; the set is closed by the unexported marker method.
type Actor interface {
	AccountID() int64
	Role() Role
	actor()
}

type YouthActor struct {
	ID int64
}

func (a YouthActor) AccountID() int64 { return a.ID }
func (a YouthActor) Role() Role       { return RoleYouth }
func (YouthActor) actor()             {}

type EmployerActor struct {
	ID int64
}

func (a EmployerActor) AccountID() int64 { return a.ID }
func (a EmployerActor) Role() Role       { return RoleEmployer }
func (EmployerActor) actor()             {}

// NewActor builds the variant matching role.
func NewActor(accountID int64, role Role) (Actor, error) {
	switch role {
	case RoleYouth:
		return YouthActor{ID: accountID}, nil
	case RoleEmployer:
		return EmployerActor{ID: accountID}, nil
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, KeyActor, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(KeyActor).(Actor)
	return a, ok
}
