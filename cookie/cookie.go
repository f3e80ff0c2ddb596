package cookie

import (
	"net/http"
	"time"
)

// Cookie is a single named value plus the attributes a jar may match on.
// This module only ever reads and writes Value; every other field is
// carried through storage untouched.
type Cookie struct {
	Name  string
	Value string

	Path    string
	Domain  string
	Expires time.Time

	// MaxAge in seconds. 0 means no explicit expiry; storage backends may
	// map a positive MaxAge onto their own TTL mechanism.
	MaxAge int

	Secure   bool
	HttpOnly bool
	SameSite http.SameSite
}

// New returns a cookie with the given name and value.
func New(name, value string) Cookie {
	return Cookie{Name: name, Value: value}
}

// Named returns a cookie carrying only a name, typically for Remove.
func Named(name string) Cookie {
	return Cookie{Name: name}
}
