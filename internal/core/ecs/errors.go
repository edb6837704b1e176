package ecs

import "errors"

var (
	// ErrConfiguration reports an invalid component definition or type declaration.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrComponentNotFound reports a reference to an undefined component name.
	ErrComponentNotFound = errors.New("component not found")
	// ErrUnknownField reports an override key absent from the component's defaults.
	ErrUnknownField = errors.New("unknown component field")
	// ErrQuery reports a query spec that cannot be resolved. Errors wrapping it
	// also wrap the cause (usually ErrComponentNotFound).
	ErrQuery = errors.New("invalid query")
	// ErrStaleHandle reports use of a deleted or never-issued entity handle.
	ErrStaleHandle = errors.New("stale entity handle")
)
