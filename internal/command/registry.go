// Package command is the boundary between the UI and the data layer: every
// operation is a named command taking a JSON payload and returning a JSON
// result or a user-facing error.
package command

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUnknown is returned when the invoked command name is not registered.
var ErrUnknown = errors.New("unknown command")

// HandlerFunc executes one command against its decoded payload.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Registry maps command names to their handlers.
type Registry struct {
	handlers map[string]HandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HandlerFunc)}
}

func (r *Registry) Register(name string, fn HandlerFunc) {
	r.handlers[name] = fn
}

// Dispatch invokes the named command. The payload may be empty for commands
// that take no input.
func (r *Registry) Dispatch(ctx context.Context, name string, payload json.RawMessage) (any, error) {
	fn, ok := r.handlers[name]
	if !ok {
		return nil, ErrUnknown
	}
	return fn(ctx, payload)
}

// BindError reports a payload that could not be decoded into the command's
// request shape.
type BindError struct{ msg string }

func (e *BindError) Error() string { return e.msg }

// ValidationError reports request fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }
