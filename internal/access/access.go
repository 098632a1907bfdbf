// Package access decides on subscription plans and the limits they grant.
package access

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// swagger:enum Plan
type Plan string

const (
	Free Plan = "FREE"
	Pro  Plan = "PRO"
)

// swagger:enum Role
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// DefaultProDuration is how long a Pro plan lasts when no expiration is given.
const DefaultProDuration = 30 * 24 * time.Hour

var (
	ErrForbidden   = errors.New("you are not allowed to perform this action")
	ErrInvalidPlan = errors.New("the plan is invalid, it must be one of FREE, PRO")
)

// Subject is a user as seen by the policy.
type Subject struct {
	ID   uuid.UUID
	Role Role
}

// State is the plan of a user.
type State struct {
	Plan      Plan
	ExpiresAt *time.Time // Always nil for the Free plan
}

// Limits are the maximum number of clients per plan. Zero or less means
// unlimited.
type Limits struct {
	Free int
	Pro  int
}

// SetPlan computes the plan state after the actor assigns the plan to the target.
//
// Plans of administrators can never be changed, neither by themselves nor by
// other administrators.
func SetPlan(actor, target Subject, plan Plan, expiresAt *time.Time, now time.Time) (State, error) {
	if actor.ID == target.ID || target.Role == RoleAdmin {
		return State{}, ErrForbidden
	}

	if !slices.Contains([]Plan{Free, Pro}, plan) {
		return State{}, ErrInvalidPlan
	}

	if plan == Free {
		return State{Plan: Free}, nil
	}

	if expiresAt == nil {
		e := now.Add(DefaultProDuration)
		expiresAt = &e
	}

	e := expiresAt.In(time.UTC)
	return State{Plan: Pro, ExpiresAt: &e}, nil
}

// Effective returns the plan in effect at the given time. A Pro plan
// that has expired is treated as Free.
func (s State) Effective(now time.Time) Plan {
	if s.Plan == Pro && s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) {
		return Free
	}

	if s.Plan == Pro {
		return Pro
	}

	return Free
}

// Expire returns the state with an expired Pro plan downgraded to Free.
// The second return value reports if the state changed.
func (s State) Expire(now time.Time) (State, bool) {
	if s.Plan == Pro && s.Effective(now) == Free {
		return State{Plan: Free}, true
	}

	return s, false
}

// Limit returns the client limit for the plan.
func (l Limits) Limit(plan Plan) int {
	if plan == Pro {
		return l.Pro
	}

	return l.Free
}

// IsWithinLimits reports if a user on the plan with currentClientCount clients
// may create another one.
func IsWithinLimits(plan Plan, currentClientCount int, limits Limits) bool {
	limit := limits.Limit(plan)
	if limit <= 0 {
		return true
	}

	return currentClientCount < limit
}
