package services

import (
	"context"
	"errors"
	"sync"

	"github.com/codeowners-bool/cli/internal/domain"
)

// CachingTeamResolver memoizes team lookups around another resolver. The
// evaluator resolves every operand without short-circuiting, so the same team
// can be looked up many times within one evaluation; the cache keeps that to
// one API call per slug and per run. Member lists and not-found outcomes are
// cached; transient errors are not.
type CachingTeamResolver struct {
	next domain.TeamResolver

	mu      sync.Mutex
	members map[string][]string
	missing map[string]struct{}
}

// NewCachingTeamResolver wraps a resolver with per-run memoization
func NewCachingTeamResolver(next domain.TeamResolver) *CachingTeamResolver {
	return &CachingTeamResolver{
		next:    next,
		members: make(map[string][]string),
		missing: make(map[string]struct{}),
	}
}

// Resolve returns the cached member list for slug, consulting the wrapped
// resolver on the first lookup
func (c *CachingTeamResolver) Resolve(ctx context.Context, slug string) ([]string, error) {
	c.mu.Lock()
	if m, ok := c.members[slug]; ok {
		c.mu.Unlock()
		return m, nil
	}
	if _, ok := c.missing[slug]; ok {
		c.mu.Unlock()
		return nil, domain.ErrTeamNotFound
	}
	c.mu.Unlock()

	members, err := c.next.Resolve(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			c.mu.Lock()
			c.missing[slug] = struct{}{}
			c.mu.Unlock()
		}
		return nil, err
	}

	c.mu.Lock()
	c.members[slug] = members
	c.mu.Unlock()
	return members, nil
}
