// Package policy decides whether an action on a resource is permitted.
package policy

import (
	"context"
	"errors"
	"fmt"
)

// ErrForbidden is returned when a policy rejects an action
var ErrForbidden = errors.New("forbidden")

// Action is an operation a caller wants to perform
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionAssign Action = "assign"
)

// Resource is the kind of entity an action targets
type Resource string

const (
	ResourceProject    Resource = "project"
	ResourceTodo       Resource = "todo"
	ResourceUser       Resource = "user"
	ResourceAssignment Resource = "assignment"
)

// Policy authorizes actions. A nil error means allowed.
type Policy interface {
	Authorize(ctx context.Context, action Action, resource Resource) error
}

// Func adapts a function to the Policy interface
type Func func(ctx context.Context, action Action, resource Resource) error

// Authorize calls f
func (f Func) Authorize(ctx context.Context, action Action, resource Resource) error {
	return f(ctx, action, resource)
}

type allowAll struct{}

func (allowAll) Authorize(context.Context, Action, Resource) error { return nil }

// AllowAll permits every action
func AllowAll() Policy {
	return allowAll{}
}

type readOnly struct{}

func (readOnly) Authorize(_ context.Context, action Action, resource Resource) error {
	if action == ActionRead {
		return nil
	}
	return Deny(action, resource)
}

// ReadOnly permits reads and rejects every write
func ReadOnly() Policy {
	return readOnly{}
}

// Deny builds the error a policy returns when it rejects action on resource
func Deny(action Action, resource Resource) error {
	return fmt.Errorf("%w: %s %s", ErrForbidden, action, resource)
}

// OrAllowAll returns p, or AllowAll when p is nil
func OrAllowAll(p Policy) Policy {
	if p == nil {
		return AllowAll()
	}
	return p
}
