package middleware

import "github.com/aretw0/waypoint/pkg/ports"

// Middleware allows wrapping a PathStore to add behavior.
type Middleware func(ports.PathStore) ports.PathStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.PathStore, mws ...Middleware) ports.PathStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
