package app

import (
	"fmt"
	"sort"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.InvariantRegistry = (*InvariantRegistry)(nil)

// InvariantRegistry collects module invariants by route.
type InvariantRegistry struct {
	routes map[string]sdk.Invariant
}

// NewInvariantRegistry returns an empty registry.
func NewInvariantRegistry() *InvariantRegistry {
	return &InvariantRegistry{routes: make(map[string]sdk.Invariant)}
}

// RegisterRoute implements sdk.InvariantRegistry.
func (r *InvariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes[fmt.Sprintf("%s/%s", moduleName, route)] = invar
}

// Routes lists the registered routes in order.
func (r *InvariantRegistry) Routes() []string {
	routes := make([]string, 0, len(r.routes))
	for route := range r.routes {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	return routes
}

// Assert runs every invariant and reports all broken ones.
func (r *InvariantRegistry) Assert(ctx sdk.Context) error {
	var broken []string
	for _, route := range r.Routes() {
		if msg, stop := r.routes[route](ctx); stop {
			broken = append(broken, msg)
		}
	}
	if len(broken) > 0 {
		return fmt.Errorf("broken invariants:\n%s", strings.Join(broken, "\n"))
	}
	return nil
}
