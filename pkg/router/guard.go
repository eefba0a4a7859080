package router

import "context"

// composeGuards runs guards in order with commit at the end of the chain.
func composeGuards(ctx context.Context, guards []Guard, to, from Location, commit func() error) error {
	if len(guards) == 0 {
		return commit()
	}

	chain := commit
	for i := len(guards) - 1; i >= 0; i-- {
		g := guards[i]
		next := chain
		chain = func() error {
			return g.Handle(ctx, to, from, next)
		}
	}
	return chain()
}

// Chain combines guards into one, run in order.
func Chain(guards ...Guard) Guard {
	return GuardFunc(func(ctx context.Context, to, from Location, next func() error) error {
		return composeGuards(ctx, guards, to, from, next)
	})
}
