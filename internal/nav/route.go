// Package nav is the client-side navigation layer: a declarative route table
// resolving paths to named views, and a guard deciding per transition whether
// the caller may proceed.
package nav

import "strings"

// Route is one entry of the route table. Child paths are relative to the
// parent's; every name is globally unique.
type Route struct {
	Path       string  // path pattern, segments starting with ':' bind by position
	Name       string  // unique route name
	View       string  // view identifier handed to the rendering layer
	RedirectTo string  // name of the default child to continue to, if any
	Children   []Route // nested section, if any
}

// Match is a resolved navigation target.
type Match struct {
	Route    *Route
	Path     string            // the raw path that was resolved
	Params   map[string]string // named parameter bindings, by position
	Redirect string            // route name to continue to (default child or not-found)
}

// splitPath breaks a path into its segments. "/" resolves to no segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// matchSegments binds pattern segments against path segments. A ":name"
// segment matches any single value and records it; anything else must match
// literally.
func matchSegments(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}
