// Package memory defines the narrow KV and vector store contracts
// reduction strategies depend on, plus in-memory reference
// implementations for tests and small deployments. Real backends
// (Redis, pgvector, Pinecone, ...) are out of scope: they implement
// these same two interfaces.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// Entry is one stored value, timestamped for cache-invalidation and
// debugging purposes.
type Entry[T any] struct {
	Data      T
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any
}

// KVMemory is the persistence contract the Summary strategy uses to
// cache a subtree's rendered content across renders, keyed by the id the
// strategy's author assigned.
type KVMemory[T any] interface {
	Get(ctx context.Context, key string) (Entry[T], bool, error)
	Set(ctx context.Context, key string, data T, metadata map[string]any) error
	Delete(ctx context.Context, key string) (bool, error)
}

// SearchResult is one hit from a VectorMemory query.
type SearchResult[T any] struct {
	Key   string
	Score float64
	Entry Entry[T]
}

// SearchOptions narrows a VectorMemory.Search call.
type SearchOptions struct {
	// Limit caps the number of results returned. Zero means no cap.
	Limit int
	// Threshold drops any result scoring below it. Zero means no floor.
	Threshold float64
}

// VectorMemory is the persistence contract the VectorSearch strategy
// queries for retrieval-augmented context.
type VectorMemory[T any] interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult[T], error)
	Get(ctx context.Context, key string) (Entry[T], bool, error)
	Set(ctx context.Context, key string, data T, metadata map[string]any) error
	Delete(ctx context.Context, key string) (bool, error)
}

// InMemoryKV is a mutex-guarded map implementation of KVMemory, grounded
// on the teacher's SimpleMemory: the same "lock, copy, release" discipline
// applied to a single map instead of two history slices.
type InMemoryKV[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
}

// NewInMemoryKV returns an empty InMemoryKV.
func NewInMemoryKV[T any]() *InMemoryKV[T] {
	return &InMemoryKV[T]{entries: make(map[string]Entry[T])}
}

// Get implements KVMemory.
func (m *InMemoryKV[T]) Get(ctx context.Context, key string) (Entry[T], bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

// Set implements KVMemory. Writes are idempotent: setting the same key
// twice simply replaces UpdatedAt, matching the "store writes are
// idempotent" contract reduction strategies rely on.
func (m *InMemoryKV[T]) Set(ctx context.Context, key string, data T, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	existing, ok := m.entries[key]
	createdAt := now
	if ok {
		createdAt = existing.CreatedAt
	}
	m.entries[key] = Entry[T]{
		Data:      data,
		CreatedAt: createdAt,
		UpdatedAt: now,
		Metadata:  metadata,
	}
	return nil
}

// Delete implements KVMemory.
func (m *InMemoryKV[T]) Delete(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	delete(m.entries, key)
	return ok, nil
}

// scoredEntry pairs a key with its entry for InMemoryVector's naive
// substring-scoring search.
type scoredEntry[T any] struct {
	key   string
	entry Entry[T]
	text  string
}

// InMemoryVector is a reference VectorMemory that scores entries by
// naive substring/word overlap against the query rather than real
// embeddings. It exists so strategy tests and small fixtures can exercise
// VectorSearch without a network-backed vector database; production
// deployments wire a real backend behind the same interface.
type InMemoryVector[T any] struct {
	mu      sync.RWMutex
	entries map[string]scoredEntry[T]
	// TextOf extracts the text a query is scored against for a stored
	// value. Required; Search returns an error if nil.
	TextOf func(T) string
}

// NewInMemoryVector returns an empty InMemoryVector that scores stored
// values using textOf.
func NewInMemoryVector[T any](textOf func(T) string) *InMemoryVector[T] {
	return &InMemoryVector[T]{
		entries: make(map[string]scoredEntry[T]),
		TextOf:  textOf,
	}
}

// Set implements VectorMemory.
func (m *InMemoryVector[T]) Set(ctx context.Context, key string, data T, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	existing, ok := m.entries[key]
	createdAt := now
	if ok {
		createdAt = existing.entry.CreatedAt
	}
	text := ""
	if m.TextOf != nil {
		text = m.TextOf(data)
	}
	m.entries[key] = scoredEntry[T]{
		key: key,
		entry: Entry[T]{
			Data:      data,
			CreatedAt: createdAt,
			UpdatedAt: now,
			Metadata:  metadata,
		},
		text: text,
	}
	return nil
}

// Get implements VectorMemory.
func (m *InMemoryVector[T]) Get(ctx context.Context, key string) (Entry[T], bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e.entry, ok, nil
}

// Delete implements VectorMemory.
func (m *InMemoryVector[T]) Delete(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	delete(m.entries, key)
	return ok, nil
}

// Search implements VectorMemory with a word-overlap score in [0,1]:
// fraction of query words present in the stored text. It is meant for
// tests and fixtures only; swap in a real embedding-backed VectorMemory
// for anything production-facing.
func (m *InMemoryVector[T]) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult[T], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.TextOf == nil {
		return nil, errors.New("memory: InMemoryVector.TextOf is nil")
	}

	queryWords := splitWords(query)
	var results []SearchResult[T]
	for _, se := range m.entries {
		score := overlapScore(queryWords, splitWords(se.text))
		if score < opts.Threshold {
			continue
		}
		results = append(results, SearchResult[T]{Key: se.key, Score: score, Entry: se.entry})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Key < results[j].Key
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

func splitWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	start := -1
	for i, r := range s {
		if isWordRune(r) {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			words[toLower(s[start:i])] = struct{}{}
			start = -1
		}
	}
	if start != -1 {
		words[toLower(s[start:])] = struct{}{}
	}
	return words
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func overlapScore(query, text map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for w := range query {
		if _, ok := text[w]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}
