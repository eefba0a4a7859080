package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Navigation failures.
var (
	// ErrNavigationDuplicated is returned when navigating to the current
	// location.
	ErrNavigationDuplicated = errors.New("navigation duplicated")

	// ErrNavigationAborted is returned when a guard stops a navigation.
	ErrNavigationAborted = errors.New("navigation aborted")

	// ErrNavigationCancelled is returned when a newer navigation started
	// before this one was committed.
	ErrNavigationCancelled = errors.New("navigation cancelled")

	// ErrHistoryBoundary is returned by Go, Back and Forward when there is
	// no entry to move to.
	ErrHistoryBoundary = errors.New("no history entry in that direction")

	// ErrOutsideBase is returned by Ready for request paths outside the
	// history base.
	ErrOutsideBase = errors.New("path is outside the router base")
)

// BeforeEach registers a guard run before every navigation, after the
// guards registered earlier.
func (r *Router) BeforeEach(g Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, g)
}

// AfterEach registers a hook run after every navigation attempt.
func (r *Router) AfterEach(h AfterHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.afterHooks = append(r.afterHooks, h)
}

// CurrentRoute returns the current location.
func (r *Router) CurrentRoute() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Push navigates to an application-relative target, adding a history entry.
func (r *Router) Push(ctx context.Context, to string) error {
	return r.navigate(ctx, to, func(loc Location) { r.history.Push(loc.FullPath) })
}

// Replace navigates to a target, overwriting the current history entry.
func (r *Router) Replace(ctx context.Context, to string) error {
	return r.navigate(ctx, to, func(loc Location) { r.history.Replace(loc.FullPath) })
}

// Ready performs the initial navigation from a raw request path, the way a
// browser router boots from the address bar. A query or hash is kept.
func (r *Router) Ready(ctx context.Context, urlPath string) error {
	path, suffix := urlPath, ""
	if i := strings.IndexAny(urlPath, "?#"); i >= 0 {
		path, suffix = urlPath[:i], urlPath[i:]
	}
	appPath, ok := r.history.StripBase(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOutsideBase, urlPath)
	}
	return r.Replace(ctx, appPath+suffix)
}

// Back moves one entry back in history.
func (r *Router) Back(ctx context.Context) error {
	return r.Go(ctx, -1)
}

// Forward moves one entry forward in history.
func (r *Router) Forward(ctx context.Context) error {
	return r.Go(ctx, 1)
}

// Go moves delta entries through history and navigates to the entry found
// there. If a guard rejects it, the history position is restored.
func (r *Router) Go(ctx context.Context, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.history.Go(delta) {
		return ErrHistoryBoundary
	}

	err := r.navigate(ctx, r.history.Location(), func(Location) {})
	if err != nil && !errors.Is(err, ErrNavigationDuplicated) {
		r.history.Go(-delta)
	}
	return err
}

// navigate resolves to, runs guards around commit and then after hooks.
func (r *Router) navigate(ctx context.Context, to string, record func(Location)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := r.Resolve(to)

	r.mu.Lock()
	from := r.current
	if r.started && target.FullPath == from.FullPath {
		r.mu.Unlock()
		r.runAfterHooks(ctx, target, from, ErrNavigationDuplicated)
		return ErrNavigationDuplicated
	}
	r.pending++
	id := r.pending
	guards := append([]Guard(nil), r.guards...)
	r.mu.Unlock()

	committed := false
	commit := func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.pending != id {
			return ErrNavigationCancelled
		}
		record(target)
		r.current = target
		r.started = true
		committed = true
		return nil
	}

	err := composeGuards(ctx, guards, target, from, commit)
	switch {
	case err != nil && committed:
		// History and current already moved; the navigation stands.
		r.log.Warn("guard failed after commit",
			zap.String("to", target.FullPath),
			zap.Error(err))
		err = nil
	case err != nil && !errors.Is(err, ErrNavigationCancelled) && !errors.Is(err, ErrNavigationAborted) && !committed && ctx.Err() == nil:
		err = fmt.Errorf("%w: %w", ErrNavigationAborted, err)
	case err == nil && !committed:
		err = ErrNavigationAborted
	}

	if err != nil {
		r.log.Debug("navigation failed",
			zap.String("to", target.FullPath),
			zap.String("from", from.FullPath),
			zap.Error(err))
	}
	r.runAfterHooks(ctx, target, from, err)
	return err
}

func (r *Router) runAfterHooks(ctx context.Context, to, from Location, failure error) {
	r.mu.Lock()
	hooks := append([]AfterHook(nil), r.afterHooks...)
	r.mu.Unlock()
	for _, h := range hooks {
		h(ctx, to, from, failure)
	}
}
