package session

import "context"

type ctxKey struct{}

var ctxKeyState = ctxKey{}

func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, ctxKeyState, st)
}

// FromContext returns the request's session state, or nil outside Middleware.
func FromContext(ctx context.Context) *State {
	if v := ctx.Value(ctxKeyState); v != nil {
		if st, ok := v.(*State); ok {
			return st
		}
	}
	return nil
}
