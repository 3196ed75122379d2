package nav

import "strings"

// NotFoundName is the named route unmatched paths redirect to. Deep links and
// tests rely on it staying fixed.
const NotFoundName = "error-404"

// Routes returns the application route table. Wire spelling of accommodation
// paths follows the server ("accomodation").
func Routes() []Route {
	return []Route{
		{Path: "/signin", Name: "signin", View: "signin"},
		{Path: "/signup", Name: "signup", View: "signup"},
		{Path: "/password/reset", Name: "reset-password", View: "reset-password"},
		{Path: "/", Name: "home", View: "home"},
		{Path: "/saved", Name: "saved", View: "saved"},
		{Path: "/account/:accUser/accomodation/:registerNumber/edit", Name: "accomodation-edit", View: "accomodation-edit"},
		{
			Path: "/account/:username", Name: "account", View: "account",
			RedirectTo: "user-profile",
			Children: []Route{
				{Path: "profile", Name: "user-profile", View: "user-profile"},
				{Path: "accomodations", Name: "user-ads", View: "user-ads"},
				{Path: "bookings", Name: "user-bookings", View: "user-bookings"},
			},
		},
		{
			Path: "/account/:username/upload", Name: "account-accomodation-upload", View: "accomodation-upload",
			RedirectTo: "accomodation-upload-basic-data",
			Children: []Route{
				{Path: "basic-data", Name: "accomodation-upload-basic-data", View: "upload-basic-data"},
				{Path: "location", Name: "accomodation-upload-location", View: "upload-location"},
				{Path: "services", Name: "accomodation-upload-services", View: "upload-services"},
				{Path: "rules", Name: "accomodation-upload-rules", View: "upload-rules"},
				{Path: "images", Name: "accomodation-upload-images", View: "upload-images"},
			},
		},
		{Path: "/bookings/:bookingId", Name: "booking-detail", View: "booking-detail"},
		{Path: "/accomodation/:registerNumber/booking", Name: "booking-accomodation", View: "booking-task"},
		{Path: "/accomodation/:registerNumber", Name: "accomodation-detail", View: "accomodation-detail"},
		{Path: "/u/:userId", Name: "user-profile-public", View: "user-profile-public"},
		{Path: "/help", Name: "app-help", View: "help"},
		{Path: "/401", Name: "error-401", View: "error-401"},
		{Path: "/404", Name: "error-404", View: "error-404"},
		{Path: "/500", Name: "error-500", View: "error-500"},
		{Path: "/503", Name: "error-503", View: "error-503"},
	}
}

// entry is a flattened route with its absolute pattern, in table order.
type entry struct {
	pattern []string
	route   *Route
}

// Table resolves paths against an ordered route list. The not-found fallback
// has catch-all semantics: it applies only when nothing more specific matched.
type Table struct {
	entries []entry
	byName  map[string]*Route
}

// NewTable builds a Table from the given routes, flattening children under
// their parent's path prefix.
func NewTable(routes []Route) *Table {
	t := &Table{byName: map[string]*Route{}}
	for i := range routes {
		t.add(&routes[i], "")
	}
	return t
}

func (t *Table) add(r *Route, prefix string) {
	full := r.Path
	if prefix != "" {
		full = strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(r.Path, "/")
	}
	t.entries = append(t.entries, entry{pattern: splitPath(full), route: r})
	t.byName[r.Name] = r
	for i := range r.Children {
		t.add(&r.Children[i], full)
	}
}

// Resolve maps a path to a Match. A parent with a default child resolves with
// Redirect set to the child's name; unmatched paths resolve with Redirect set
// to NotFoundName and a nil Route.
func (t *Table) Resolve(path string) Match {
	segments := splitPath(path)
	for _, e := range t.entries {
		params, ok := matchSegments(e.pattern, segments)
		if !ok {
			continue
		}
		return Match{
			Route:    e.route,
			Path:     path,
			Params:   params,
			Redirect: e.route.RedirectTo,
		}
	}
	return Match{Path: path, Redirect: NotFoundName}
}

// ByName looks a route up by its unique name.
func (t *Table) ByName(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// PathFor renders the absolute path of a named route, substituting :params
// from the given bindings. Returns false when the route is unknown or a
// parameter is missing.
func (t *Table) PathFor(name string, params map[string]string) (string, bool) {
	for _, e := range t.entries {
		if e.route.Name != name {
			continue
		}
		parts := make([]string, 0, len(e.pattern))
		for _, seg := range e.pattern {
			if strings.HasPrefix(seg, ":") {
				v, ok := params[seg[1:]]
				if !ok {
					return "", false
				}
				parts = append(parts, v)
				continue
			}
			parts = append(parts, seg)
		}
		return "/" + strings.Join(parts, "/"), true
	}
	return "", false
}
