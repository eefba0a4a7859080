package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/vitrine-dev/vitrine/pkg/routepath"
	"go.uber.org/zap"
)

// Resolution errors.
var (
	ErrUnknownRoute = errors.New("no route with that name")
	ErrMissingParam = errors.New("missing route parameter")
)

// Options configures New.
type Options struct {
	// History is the navigation stack. Defaults to a WebHistory at "/".
	History History

	// Routes is the ordered route table. It is copied.
	Routes []Route

	// Logger receives resolution warnings. Defaults to a no-op logger.
	Logger *zap.Logger

	// Sensitive makes static segments match case-sensitively. By default
	// "/Produto" matches "/produto".
	Sensitive bool
}

// Router owns a route table and a history. The table is immutable after
// New; navigation state is guarded by a mutex.
type Router struct {
	routes  []Route
	byName  map[string]*Route
	root    *routeNode
	history History
	log     *zap.Logger

	sensitive bool

	mu         sync.Mutex
	current    Location
	started    bool
	pending    uint64
	guards     []Guard
	afterHooks []AfterHook
}

// New validates the table and builds a router. All table problems are
// reported together as a *MultiValidationError.
func New(opts Options) (*Router, error) {
	if err := validateRoutes(opts.Routes); err != nil {
		return nil, err
	}

	history := opts.History
	if history == nil {
		history = newWebHistory("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Router{
		routes:  append([]Route(nil), opts.Routes...),
		byName:  make(map[string]*Route, len(opts.Routes)),
		root:    &routeNode{},
		history: history,
		log:     logger.With(zap.String("component", "router")),

		sensitive: opts.Sensitive,
	}
	for i := range r.routes {
		route := &r.routes[i]
		r.byName[route.Name] = route
		r.root.insert(route.Path).route = route
	}
	r.current = r.StartLocation()
	return r, nil
}

// Routes returns a copy of the table in declaration order.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Lookup returns the route with the given name.
func (r *Router) Lookup(name string) (*Route, bool) {
	route, ok := r.byName[name]
	return route, ok
}

// HasRoute reports whether a route with the given name exists.
func (r *Router) HasRoute(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// History returns the router's history.
func (r *Router) History() History {
	return r.history
}

// Base returns the normalized history base.
func (r *Router) Base() string {
	return r.history.Base()
}

// StartLocation is the location a router reports before its first
// navigation: root, with no matched route.
func (r *Router) StartLocation() Location {
	return Location{
		FullPath: "/",
		Path:     "/",
		Href:     r.history.CreateHref("/"),
	}
}

// Resolve matches an application-relative target against the table. It
// never fails: a target that is malformed or matches nothing yields a
// Location whose Route is nil.
func (r *Router) Resolve(to string) Location {
	target, err := routepath.Parse(to)
	if err != nil {
		r.log.Warn("invalid navigation target", zap.String("to", to), zap.Error(err))
		// The href stays rooted under the base so it is always same-origin.
		return Location{FullPath: to, Path: to, Href: r.history.CreateHref("/" + strings.TrimLeft(to, "/"))}
	}

	loc := Location{
		FullPath: target.FullPath(),
		Path:     target.Path,
		Query:    target.Query,
		Hash:     target.Hash,
	}
	loc.Href = r.history.CreateHref(loc.FullPath)

	params := make(map[string]string)
	node := r.root.match(routepath.Segments(target.Path), params, r.sensitive)
	if node == nil {
		r.log.Warn("no match found for location", zap.String("path", target.Path))
		return loc
	}

	loc.Route = node.route
	loc.Name = node.route.Name
	loc.Params = params
	return loc
}

// ResolveName builds the location of a named route, filling its parameters.
func (r *Router) ResolveName(name string, params map[string]string) (Location, error) {
	route, ok := r.byName[name]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	segments := splitPattern(route.Path)
	built := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "*"):
			value, ok := params[seg[1:]]
			if !ok {
				return Location{}, fmt.Errorf("%w: %q for route %q", ErrMissingParam, seg[1:], name)
			}
			if value != "" {
				built = append(built, value)
			}
		case strings.HasPrefix(seg, ":"):
			pname, _ := parseParamSegment(seg)
			value, ok := params[pname]
			if !ok || value == "" {
				return Location{}, fmt.Errorf("%w: %q for route %q", ErrMissingParam, pname, name)
			}
			built = append(built, url.PathEscape(value))
		default:
			built = append(built, seg)
		}
	}

	loc := r.Resolve("/" + strings.Join(built, "/"))
	if loc.Route != route {
		return Location{}, fmt.Errorf("%w: params do not satisfy route %q", ErrMissingParam, name)
	}
	return loc, nil
}

// Href returns the base-prefixed URL of a parameterless named route.
func (r *Router) Href(name string) (string, error) {
	loc, err := r.ResolveName(name, nil)
	if err != nil {
		return "", err
	}
	return loc.Href, nil
}
