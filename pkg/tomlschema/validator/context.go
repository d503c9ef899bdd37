package validator

import "strings"

// Context tracks the traversal path of one validation run.
//
// The path is only used to build error messages, never for lookups.
// A Context belongs to a single run and must not be shared.
type Context struct {
	segments []string
	siblings map[string]any
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{}
}

// Push appends a path segment.
func (c *Context) Push(segment string) {
	c.segments = append(c.segments, segment)
}

// Pop removes and returns the last segment. It returns an empty string
// when the path is empty.
func (c *Context) Pop() string {
	if len(c.segments) == 0 {
		return ""
	}
	last := c.segments[len(c.segments)-1]
	c.segments = c.segments[:len(c.segments)-1]
	return last
}

// Peek returns the last segment without removing it.
func (c *Context) Peek() string {
	if len(c.segments) == 0 {
		return ""
	}
	return c.segments[len(c.segments)-1]
}

// Depth returns the number of segments.
func (c *Context) Depth() int {
	return len(c.segments)
}

// FieldPath returns the segments joined with ".".
func (c *Context) FieldPath() string {
	return strings.Join(c.segments, ".")
}

// WithPath runs fn with segment pushed. The segment is popped when fn
// returns, whether it fails or not.
func (c *Context) WithPath(segment string, fn func() error) error {
	c.Push(segment)
	defer c.Pop()
	return fn()
}

// Siblings returns the values of the table instance being validated.
func (c *Context) Siblings() map[string]any {
	return c.siblings
}

// withSiblings runs fn with values as the current table instance.
func (c *Context) withSiblings(values map[string]any, fn func() error) error {
	previous := c.siblings
	c.siblings = values
	defer func() { c.siblings = previous }()
	return fn()
}
