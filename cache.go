package cria

import (
	"runtime"
	"sync"
	"weak"
)

// renderCache is the fit loop's identity-keyed memoization table: a
// *SubtreeSummary per *Scope and a token count per *Message, both keyed on
// node pointer identity. Because applyStrategiesAtPriority reuses the
// pointer of any scope a strategy left untouched (structural sharing), a
// subtree whose content didn't change across an iteration hits this cache
// instead of being re-summarized from scratch.
//
// Entries are held behind weak.Pointer rather than the node pointer
// itself, so the cache never pins a node in memory; a runtime.AddCleanup
// finalizer registered at insertion time deletes the entry once the node
// it describes is collected. A cache is ordinarily created fresh per
// Render call and discarded with it (see runFit), but the weak/cleanup
// pairing means one could just as well be kept by a long-lived provider
// across many renders without leaking.
type renderCache struct {
	summaries sync.Map // weak.Pointer[Scope] -> *SubtreeSummary
	messages  sync.Map // weak.Pointer[Message] -> int
}

func newRenderCache() *renderCache {
	return &renderCache{}
}

func (c *renderCache) summary(s *Scope) (*SubtreeSummary, bool) {
	v, ok := c.summaries.Load(weak.Make(s))
	if !ok {
		return nil, false
	}
	return v.(*SubtreeSummary), true
}

func (c *renderCache) storeSummary(s *Scope, sum *SubtreeSummary) {
	key := weak.Make(s)
	c.summaries.Store(key, sum)
	runtime.AddCleanup(s, func(k weak.Pointer[Scope]) { c.summaries.Delete(k) }, key)
}

func (c *renderCache) messageTokens(m *Message) (int, bool) {
	v, ok := c.messages.Load(weak.Make(m))
	if !ok {
		return 0, false
	}
	return v.(int), true
}

func (c *renderCache) storeMessageTokens(m *Message, tokens int) {
	key := weak.Make(m)
	c.messages.Store(key, tokens)
	runtime.AddCleanup(m, func(k weak.Pointer[Message]) { c.messages.Delete(k) }, key)
}
