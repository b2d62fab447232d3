// Package nav keeps the "currently open post" consistent with a navigable
// location and its history stack. Browser-shaped state (location, history,
// scroll position) is reached only through the History and Scroller ports,
// never through a process-wide singleton, so the whole package runs against
// in-memory fakes in tests and against the TUI's own stack in production.
package nav

import "strings"

const (
	// BasePath is the feed-only location.
	BasePath = "/"

	postPrefix = "/post/"
)

// PostPath encodes a post slug as a location path.
func PostPath(slug string) string {
	return postPrefix + slug
}

// ParsePostPath extracts the slug from an overlay path. Anything that does
// not match the overlay encoding (the base path, trailing garbage, an
// empty slug) parses as "no overlay" rather than an error.
func ParsePostPath(path string) (slug string, ok bool) {
	rest, found := strings.CutPrefix(path, postPrefix)
	if !found || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
