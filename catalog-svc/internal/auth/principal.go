package auth

import (
	"context"
	"slices"
)

const (
	ScopeRead  = "READ"
	ScopeWrite = "WRITE"

	AuthorityEditRestaurants = "EDIT_RESTAURANTS"
)

// Principal is an authenticated caller.
type Principal struct {
	Subject     string
	Scopes      []string
	Authorities []string
}

// Has reports whether the principal holds c. Consult needs the READ scope;
// Manage needs the WRITE scope and the EDIT_RESTAURANTS authority.
func (p *Principal) Has(c Capability) bool {
	if p == nil {
		return false
	}
	switch c {
	case None:
		return true
	case Consult:
		return slices.Contains(p.Scopes, ScopeRead)
	case Manage:
		return slices.Contains(p.Scopes, ScopeWrite) &&
			slices.Contains(p.Authorities, AuthorityEditRestaurants)
	default:
		return false
	}
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns nil for anonymous requests.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
