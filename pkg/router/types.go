package router

import (
	"context"

	"github.com/vitrine-dev/vitrine/pkg/vdom"
)

// PageMeta contains page metadata for the document head.
type PageMeta struct {
	Title       string
	Description string
}

// Route binds a path pattern and a unique name to a view.
type Route struct {
	// Path is the URL pattern (e.g., "/produto"). It must start with "/".
	Path string

	// Name is the symbolic identifier, unique across the table.
	Name string

	// Component is the view shown while the route is active.
	// The route references the component; it does not own it.
	Component vdom.Component

	// Meta is optional page metadata.
	Meta PageMeta
}

// Location is a resolved navigation target.
type Location struct {
	// FullPath is path plus query and hash, relative to the base.
	FullPath string

	// Path is the canonical path, relative to the base.
	Path string

	// Query is the raw query string without "?".
	Query string

	// Hash is the fragment without "#".
	Hash string

	// Href is FullPath prefixed with the history base.
	Href string

	// Name is the matched route's name, empty when unmatched.
	Name string

	// Params are the extracted route parameters.
	Params map[string]string

	// Route is the matched route, nil when nothing matched.
	Route *Route
}

// Matched reports whether a route matched the location.
func (l Location) Matched() bool {
	return l.Route != nil
}

// Guard runs before a navigation is committed.
type Guard interface {
	// Handle inspects the navigation and calls next to let it proceed.
	// Returning an error aborts the navigation with that error.
	// Returning nil without calling next aborts it silently.
	// An error returned after next has committed is logged and the
	// navigation stands.
	Handle(ctx context.Context, to, from Location, next func() error) error
}

// GuardFunc is a function adapter for Guard.
type GuardFunc func(ctx context.Context, to, from Location, next func() error) error

// Handle implements Guard.
func (f GuardFunc) Handle(ctx context.Context, to, from Location, next func() error) error {
	return f(ctx, to, from, next)
}

// AfterHook observes a finished navigation. failure is nil on success.
type AfterHook func(ctx context.Context, to, from Location, failure error)
