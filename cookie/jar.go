package cookie

import (
	"context"
	"errors"
)

// ErrNoCookie is returned by Jar.Get when no cookie with the requested
// name exists.
var ErrNoCookie = errors.New("cookie: no such cookie")

// Jar is the storage collaborator that owns persistence and lookup.
// Matching semantics for Remove (name, path, domain) belong entirely to
// the implementation.
type Jar interface {
	// Get returns the cookie stored under name, or ErrNoCookie.
	Get(ctx context.Context, name string) (*Cookie, error)

	// Add stores c, replacing any cookie with the same name.
	Add(ctx context.Context, c Cookie) error

	// Remove deletes the cookie matching c.
	Remove(ctx context.Context, c Cookie) error
}

// MemoryJar is a map-backed Jar. It takes no internal lock; callers that
// share one jar across goroutines must serialize access themselves.
type MemoryJar struct {
	cookies map[string]Cookie
}

func NewMemoryJar() *MemoryJar {
	return &MemoryJar{cookies: make(map[string]Cookie)}
}

func (j *MemoryJar) Get(ctx context.Context, name string) (*Cookie, error) {
	c, ok := j.cookies[name]
	if !ok {
		return nil, ErrNoCookie
	}
	return &c, nil
}

func (j *MemoryJar) Add(ctx context.Context, c Cookie) error {
	j.cookies[c.Name] = c
	return nil
}

func (j *MemoryJar) Remove(ctx context.Context, c Cookie) error {
	delete(j.cookies, c.Name)
	return nil
}

// Len reports the number of stored cookies.
func (j *MemoryJar) Len() int {
	return len(j.cookies)
}
