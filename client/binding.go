// Package client - client/binding.go
package client

import (
	"sync"

	"zeroun-site/logger"
)

// Binding couples a fetch function to a content type tag: fetch once up
// front, then re-fetch whenever a push message carries that tag. Overlapping
// re-fetches are last-write-wins; site content changes at human pace, so no
// generation counter guards against a slow stale response.
type Binding[T any] struct {
	fetch func() (T, error)
	tag   string
	sub   *Subscription

	mu      sync.Mutex
	data    T
	hasData bool
	loading bool
}

// Bind creates a binding on ch for the given content type tag and performs
// the initial fetch before returning.
func Bind[T any](ch *Channel, tag string, fetch func() (T, error)) *Binding[T] {
	b := &Binding[T]{fetch: fetch, tag: tag, loading: true}
	b.sub = ch.Subscribe(func(msg Message) {
		if msg.Type == tag {
			b.Refresh()
		}
	})
	b.Refresh()
	return b
}

// Refresh re-runs the fetch. A failed fetch keeps the previous value and
// clears the loading flag, so a view never hangs on a spinner.
func (b *Binding[T]) Refresh() {
	result, err := b.fetch()
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		logger.Error.Printf("[Binding] fetch %q failed: %v", b.tag, err)
	} else {
		b.data = result
		b.hasData = true
	}
	b.loading = false
}

// Data returns the latest fetched value and whether any fetch has succeeded.
func (b *Binding[T]) Data() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data, b.hasData
}

// Loading reports whether the initial fetch is still outstanding.
func (b *Binding[T]) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Close cancels the subscription; push messages no longer trigger fetches
// once Close returns.
func (b *Binding[T]) Close() {
	b.sub.Cancel()
}
