// Package links holds the shareable link list and the per-URL preview
// resolver.
package links

import (
	"errors"
	"net/url"
	"strings"
)

// Collection capacity bounds. The UI offers 5 by default and 10 on the
// dedicated share screen; anything above MaxCapacity is clamped.
const (
	DefaultCapacity = 5
	MaxCapacity     = 10
)

// Add failure taxonomy. All recoverable: the caller surfaces them as
// inline messages, never as a crash.
var (
	ErrEmptyInput       = errors.New("input is empty")
	ErrInvalidURL       = errors.New("not an absolute URL")
	ErrDuplicateURL     = errors.New("link already attached")
	ErrCapacityExceeded = errors.New("link capacity exceeded")
)

// Collection is an ordered, deduplicated, capacity-bounded set of
// validated URLs. Entries are identified by their exact trimmed string:
// "https://a.com" and "https://a.com/" are two distinct links.
type Collection struct {
	capacity int
	urls     []string
	seen     map[string]struct{}
}

// NewCollection creates an empty collection. capacity <= 0 falls back to
// DefaultCapacity; values above MaxCapacity are clamped.
func NewCollection(capacity int) *Collection {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	return &Collection{
		capacity: capacity,
		seen:     make(map[string]struct{}),
	}
}

// Add validates raw and appends it, preserving insertion order. It
// returns the stored URL string on success.
func (c *Collection) Add(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyInput
	}

	u, err := url.Parse(trimmed)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", ErrInvalidURL
	}

	if _, dup := c.seen[trimmed]; dup {
		return "", ErrDuplicateURL
	}
	if len(c.urls) >= c.capacity {
		return "", ErrCapacityExceeded
	}

	c.urls = append(c.urls, trimmed)
	c.seen[trimmed] = struct{}{}
	return trimmed, nil
}

// Remove deletes a link by value. No-op if absent.
func (c *Collection) Remove(target string) {
	if _, ok := c.seen[target]; !ok {
		return
	}
	delete(c.seen, target)
	for i, u := range c.urls {
		if u == target {
			c.urls = append(c.urls[:i], c.urls[i+1:]...)
			return
		}
	}
}

// Clear empties the collection.
func (c *Collection) Clear() {
	c.urls = nil
	c.seen = make(map[string]struct{})
}

// URLs returns the links in insertion order.
func (c *Collection) URLs() []string {
	out := make([]string, len(c.urls))
	copy(out, c.urls)
	return out
}

// Contains reports whether target is in the collection.
func (c *Collection) Contains(target string) bool {
	_, ok := c.seen[target]
	return ok
}

// Len returns the number of attached links.
func (c *Collection) Len() int { return len(c.urls) }

// Capacity returns the configured maximum.
func (c *Collection) Capacity() int { return c.capacity }
