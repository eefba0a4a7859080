package router

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

func TestPushReplaceBackForward(t *testing.T) {
	ctx := context.Background()
	r := newStoreRouter(t, "/")
	h := r.History().(*WebHistory)

	if err := r.Push(ctx, "/produto"); err != nil {
		t.Fatalf("Push(/produto): %v", err)
	}
	if got := r.CurrentRoute().Name; got != "produto" {
		t.Errorf("current = %q, want produto", got)
	}
	if got := h.Location(); got != "/produto" {
		t.Errorf("history location = %q, want /produto", got)
	}

	if err := r.Back(ctx); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if got := r.CurrentRoute().Name; got != "home" {
		t.Errorf("after Back current = %q, want home", got)
	}

	if err := r.Forward(ctx); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if got := r.CurrentRoute().Name; got != "produto" {
		t.Errorf("after Forward current = %q, want produto", got)
	}

	if err := r.Forward(ctx); !errors.Is(err, ErrHistoryBoundary) {
		t.Errorf("Forward at end = %v, want ErrHistoryBoundary", err)
	}

	n := h.Len()
	if err := r.Replace(ctx, "/"); err != nil {
		t.Fatalf("Replace(/): %v", err)
	}
	if h.Len() != n {
		t.Errorf("Replace changed stack length from %d to %d", n, h.Len())
	}
	if got := h.Location(); got != "/" {
		t.Errorf("history location after Replace = %q, want /", got)
	}
}

func TestPushTruncatesForwardEntries(t *testing.T) {
	ctx := context.Background()
	r := newStoreRouter(t, "/")
	h := r.History().(*WebHistory)

	mustNavigate(t, r.Push(ctx, "/produto"))
	mustNavigate(t, r.Push(ctx, "/produto?cor=azul"))
	mustNavigate(t, r.Back(ctx))
	mustNavigate(t, r.Push(ctx, "/"))

	if err := r.Forward(ctx); !errors.Is(err, ErrHistoryBoundary) {
		t.Errorf("Forward after Push = %v, want ErrHistoryBoundary", err)
	}
	if h.Len() != 3 {
		t.Errorf("stack length = %d, want 3", h.Len())
	}
}

func TestDuplicateNavigation(t *testing.T) {
	ctx := context.Background()
	r := newStoreRouter(t, "/")

	var failures []error
	r.AfterEach(func(_ context.Context, _, _ Location, failure error) {
		failures = append(failures, failure)
	})

	mustNavigate(t, r.Push(ctx, "/produto"))
	if err := r.Push(ctx, "/produto"); !errors.Is(err, ErrNavigationDuplicated) {
		t.Fatalf("second Push = %v, want ErrNavigationDuplicated", err)
	}
	if err := r.Push(ctx, "/produto/"); !errors.Is(err, ErrNavigationDuplicated) {
		t.Errorf("Push with trailing slash = %v, want ErrNavigationDuplicated", err)
	}
	if err := r.Push(ctx, "/produto?cor=azul"); err != nil {
		t.Errorf("Push with new query = %v, want nil", err)
	}

	want := []error{nil, ErrNavigationDuplicated, ErrNavigationDuplicated, nil}
	if !reflect.DeepEqual(failures, want) {
		t.Errorf("after hook failures = %v, want %v", failures, want)
	}
}

func TestFirstNavigationToRootIsNotDuplicate(t *testing.T) {
	r := newStoreRouter(t, "/")
	if err := r.Push(context.Background(), "/"); err != nil {
		t.Fatalf("initial Push(/) = %v", err)
	}
	if got := r.CurrentRoute().Name; got != "home" {
		t.Errorf("current = %q, want home", got)
	}
}

func TestUnmatchedNavigationCommits(t *testing.T) {
	r := newStoreRouter(t, "/")
	if err := r.Push(context.Background(), "/sobre"); err != nil {
		t.Fatalf("Push(/sobre) = %v", err)
	}
	cur := r.CurrentRoute()
	if cur.Matched() || cur.Path != "/sobre" {
		t.Errorf("current = %+v, want unmatched /sobre", cur)
	}
}

func TestGuardAbort(t *testing.T) {
	ctx := context.Background()
	errClosed := errors.New("loja fechada")

	tests := []struct {
		name    string
		guard   GuardFunc
		wantErr []error
	}{
		{
			name: "no next",
			guard: func(context.Context, Location, Location, func() error) error {
				return nil
			},
			wantErr: []error{ErrNavigationAborted},
		},
		{
			name: "sentinel",
			guard: func(context.Context, Location, Location, func() error) error {
				return ErrNavigationAborted
			},
			wantErr: []error{ErrNavigationAborted},
		},
		{
			name: "custom error",
			guard: func(context.Context, Location, Location, func() error) error {
				return errClosed
			},
			wantErr: []error{ErrNavigationAborted, errClosed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newStoreRouter(t, "/")
			mustNavigate(t, r.Push(ctx, "/"))
			r.BeforeEach(GuardFunc(func(ctx context.Context, to, from Location, next func() error) error {
				if to.Name == "produto" {
					return tt.guard(ctx, to, from, next)
				}
				return next()
			}))

			err := r.Push(ctx, "/produto")
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Push error = %v, want %v in chain", err, want)
				}
			}
			if got := r.CurrentRoute().Name; got != "home" {
				t.Errorf("current = %q, want home", got)
			}
			if got := r.History().Location(); got != "/" {
				t.Errorf("history location = %q, want /", got)
			}
		})
	}
}

func TestGuardOrder(t *testing.T) {
	r := newStoreRouter(t, "/")

	var calls []string
	record := func(name string) Guard {
		return GuardFunc(func(_ context.Context, _, _ Location, next func() error) error {
			calls = append(calls, name+":before")
			err := next()
			calls = append(calls, name+":after")
			return err
		})
	}
	r.BeforeEach(record("a"))
	r.BeforeEach(Chain(record("b"), record("c")))
	r.AfterEach(func(context.Context, Location, Location, error) {
		calls = append(calls, "hook")
	})

	mustNavigate(t, r.Push(context.Background(), "/produto"))

	want := []string{"a:before", "b:before", "c:before", "c:after", "b:after", "a:after", "hook"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestGuardSeesFromAndTo(t *testing.T) {
	ctx := context.Background()
	r := newStoreRouter(t, "/")
	mustNavigate(t, r.Push(ctx, "/"))

	var gotTo, gotFrom string
	r.BeforeEach(GuardFunc(func(_ context.Context, to, from Location, next func() error) error {
		gotTo, gotFrom = to.Name, from.Name
		return next()
	}))
	mustNavigate(t, r.Push(ctx, "/produto"))

	if gotTo != "produto" || gotFrom != "home" {
		t.Errorf("guard saw %s -> %s, want home -> produto", gotFrom, gotTo)
	}
}

func TestGuardErrorAfterCommitKeepsNavigation(t *testing.T) {
	ctx := context.Background()
	r := newStoreRouter(t, "/")
	mustNavigate(t, r.Push(ctx, "/"))

	r.BeforeEach(GuardFunc(func(_ context.Context, _, _ Location, next func() error) error {
		if err := next(); err != nil {
			return err
		}
		return errors.New("audit log unavailable")
	}))
	var failure error
	r.AfterEach(func(_ context.Context, _, _ Location, err error) {
		failure = err
	})

	if err := r.Push(ctx, "/produto"); err != nil {
		t.Fatalf("Push = %v, want nil once committed", err)
	}
	if failure != nil {
		t.Errorf("after hook failure = %v, want nil", failure)
	}
	if got := r.CurrentRoute().Name; got != "produto" {
		t.Errorf("current = %q, want produto", got)
	}
	if got := r.History().Location(); got != "/produto" {
		t.Errorf("history location = %q, want /produto", got)
	}
}

func TestBackRestoresHistoryOnAbort(t *testing.T) {
	ctx := context.Background()
	r := newStoreRouter(t, "/")
	mustNavigate(t, r.Push(ctx, "/"))
	mustNavigate(t, r.Push(ctx, "/produto"))

	r.BeforeEach(GuardFunc(func(_ context.Context, to, _ Location, next func() error) error {
		if to.Name == "home" {
			return ErrNavigationAborted
		}
		return next()
	}))

	if err := r.Back(ctx); !errors.Is(err, ErrNavigationAborted) {
		t.Fatalf("Back = %v, want ErrNavigationAborted", err)
	}
	if got := r.History().Location(); got != "/produto" {
		t.Errorf("history location = %q, want /produto", got)
	}
	if got := r.CurrentRoute().Name; got != "produto" {
		t.Errorf("current = %q, want produto", got)
	}
}

func TestCancelledContext(t *testing.T) {
	r := newStoreRouter(t, "/")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Push(ctx, "/produto"); !errors.Is(err, context.Canceled) {
		t.Errorf("Push = %v, want context.Canceled", err)
	}
	if r.CurrentRoute().Matched() {
		t.Error("cancelled navigation must not commit")
	}
}

func TestNewerNavigationCancelsPending(t *testing.T) {
	ctx := context.Background()
	r := newStoreRouter(t, "/")
	mustNavigate(t, r.Push(ctx, "/"))

	entered := make(chan struct{})
	release := make(chan struct{})
	r.BeforeEach(GuardFunc(func(_ context.Context, to, _ Location, next func() error) error {
		if to.Name == "produto" {
			close(entered)
			<-release
		}
		return next()
	}))

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = r.Push(ctx, "/produto")
	}()

	<-entered
	mustNavigate(t, r.Push(ctx, "/?promo=1"))
	close(release)
	wg.Wait()

	if !errors.Is(slowErr, ErrNavigationCancelled) {
		t.Errorf("slow navigation = %v, want ErrNavigationCancelled", slowErr)
	}
	if got := r.CurrentRoute().FullPath; got != "/?promo=1" {
		t.Errorf("current = %q, want /?promo=1", got)
	}
}

func TestReady(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		urlPath string
		want    string
		wantErr error
	}{
		{"/loja/produto", "produto", nil},
		{"/loja/", "home", nil},
		{"/loja", "home", nil},
		{"/loja?promo=1", "home", nil},
		{"/loja/produto?cor=azul#fotos", "produto", nil},
		{"/produto", "", ErrOutsideBase},
		{"/lojas/produto", "", ErrOutsideBase},
	}

	for _, tt := range tests {
		r := newStoreRouter(t, "/loja/")
		err := r.Ready(ctx, tt.urlPath)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Ready(%q) = %v, want %v", tt.urlPath, err, tt.wantErr)
			continue
		}
		if got := r.CurrentRoute().Name; got != tt.want {
			t.Errorf("Ready(%q) current = %q, want %q", tt.urlPath, got, tt.want)
		}
	}
}

func mustNavigate(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("navigation failed: %v", err)
	}
}
