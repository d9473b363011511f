package typetree

import "sync"

// Counter hands out array occurrence indexes per field name. Indexes for a
// name start at 0 and grow by one on every call to Next, for the lifetime of
// the counter. It is safe for concurrent use.
type Counter struct {
	mu   sync.Mutex
	next map[string]int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{next: make(map[string]int)}
}

var shared = NewCounter()

// SharedCounter returns the process-wide counter used by builders that are not
// given their own. It is never reset, so indexes stay unique across unrelated
// classes for the whole process.
func SharedCounter() *Counter {
	return shared
}

// Next returns the current index for name and advances it.
func (c *Counter) Next(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.next == nil {
		c.next = make(map[string]int)
	}
	idx := c.next[name]
	c.next[name] = idx + 1
	return idx
}

// Peek returns the index the next call to Next would hand out for name.
func (c *Counter) Peek(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.next[name]
}

// Snapshot returns a copy of the next index per field name.
func (c *Counter) Snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.next))
	for name, idx := range c.next {
		out[name] = idx
	}
	return out
}
