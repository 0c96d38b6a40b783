// Package cache memoizes compiled hemlock programs by source text.
//
// Capacity here is not a count of entries but a budget on total AST
// weight (pkg/program.Program.Weight, backed by pkg/ast.Node.Count):
// caching 256 one-line scripts costs nothing like caching 256 programs
// built from deeply nested function literals, so a flat per-entry cap
// would either waste memory or starve the cache depending on what a
// caller happens to run. Eviction walks from the least recently used
// entry until the stored weight fits the budget again, which may drop
// more than one entry for a single large Set.
//
// It is wired into the top-level Eval convenience function via
// WithCaching, avoiding a re-lex/re-parse of the same source string on
// every call — valuable for a host that evaluates the same small
// program repeatedly against different environments.
//
// # Example
//
//	c := cache.New(4096)
//	prog, err := c.GetOrCompile(src, compile)
package cache

import (
	"container/list"
	"sync"

	"github.com/hemlocklang/hemlock/pkg/program"
)

// defaultWeightBudget is used when New is called with a non-positive
// budget.
const defaultWeightBudget = 4096

type entry struct {
	key    string
	prog   *program.Program
	weight int
}

// Cache is a thread-safe cache of compiled programs, bounded by total
// AST weight rather than entry count and evicted least-recently-used
// first. Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu           sync.RWMutex
	weightBudget int
	weight       int
	ll           *list.List
	items        map[string]*list.Element
}

// New creates a cache with the given total-weight budget. budget must
// be > 0; if <= 0, defaultWeightBudget is used.
func New(budget int) *Cache {
	if budget <= 0 {
		budget = defaultWeightBudget
	}
	return &Cache{
		weightBudget: budget,
		ll:           list.New(),
		items:        make(map[string]*list.Element),
	}
}

// Get retrieves a compiled program and promotes it to most-recently-used.
// Returns (nil, false) if key is not present.
func (c *Cache) Get(key string) (*program.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*entry).prog, true
}

// Set inserts or replaces the program stored under key, then evicts
// least-recently-used entries until the cache's total weight fits its
// budget again.
func (c *Cache) Set(key string, prog *program.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := prog.Weight()

	if el, ok := c.items[key]; ok {
		old := el.Value.(*entry)
		c.weight += w - old.weight
		old.prog, old.weight = prog, w
		c.ll.MoveToFront(el)
	} else {
		el := c.ll.PushFront(&entry{key: key, prog: prog, weight: w})
		c.items[key] = el
		c.weight += w
	}

	c.evictToBudget()
}

// evictToBudget drops least-recently-used entries until the cache's
// total weight is within its budget, or only one entry remains. Must
// be called with c.mu held for writing. A single oversized program is
// kept alone (evicting everything around it) rather than rejected,
// since GetOrCompile must always return something cacheable.
func (c *Cache) evictToBudget() {
	for c.weight > c.weightBudget && c.ll.Len() > 1 {
		back := c.ll.Back()
		e := back.Value.(*entry)
		c.ll.Remove(back)
		delete(c.items, e.key)
		c.weight -= e.weight
	}
}

// GetOrCompile returns the cached program for key, or calls compile to
// build and cache one; a failed compile is never cached. The miss check
// and compile are not done under one lock, so concurrent misses on the
// same key may each call compile, and a key evicted since is compiled
// again.
func (c *Cache) GetOrCompile(key string, compile func() (*program.Program, error)) (*program.Program, error) {
	if prog, ok := c.Get(key); ok {
		return prog, nil
	}
	prog, err := compile()
	if err != nil {
		return nil, err
	}
	c.Set(key, prog)
	return prog, nil
}

// Len returns the number of programs currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Weight returns the total AST weight of all cached programs.
func (c *Cache) Weight() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.weight
}

// Capacity returns the cache's total-weight budget.
func (c *Cache) Capacity() int {
	return c.weightBudget
}
