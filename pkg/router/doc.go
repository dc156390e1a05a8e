// Package router implements file-system-backed URL routing for Wayfind.
//
// A pages directory is compiled into an in-memory routing structure;
// given a request path the router produces the matched page together
// with the layouts, error pages, loading pages, templates, and parallel
// slot contents that surround it.
//
// # File Structure Convention
//
// Routes are defined by files under a pages root:
//
//	pages/
//	├── index.html            → /
//	├── _layout.html          → layout at /
//	├── users/
//	│   ├── new.html          → /users/new
//	│   └── [id:uint].html    → /users/:id
//	├── docs/
//	│   └── [...slug].html    → /docs/*slug
//	├── (marketing)/          → route group, erased from the URL
//	│   └── pricing.html      → /pricing
//	├── @analytics/
//	│   └── index.html        → parallel slot "analytics" at /
//	└── feed/
//	    └── (...)             → intercepting marker
//	        └── photo/[id].html
//
// Reserved stems: index, _layout, _layout.<name>, _error, loading,
// not-found, _template, _nolayout. The file extension never matters.
//
// # Matching
//
// Routes sort by priority: static segments beat dynamic ones, dynamic
// beat optional, and catch-alls come last (an optional catch-all after
// its required sibling). Matching walks the sorted list and returns the
// first hit with its captured bindings:
//
//	r := router.New()
//	scanner := router.NewScanner("pages")
//	_ = scanner.ScanInto(r)
//
//	m := r.MatchRoute("/users/42")
//	// m.Route.Pattern == "/users/:id", m.Params["id"] == "42"
//
// Scoped resources resolve by walking parent paths lazily:
//
//	layout := r.GetLayout("/dashboard/settings")
//
// Named routes generate URLs in reverse:
//
//	url, err := r.URLFor("user-detail", map[string]string{"id": "42"})
//
// The router is a passive data structure: reads are lock-free and may
// run concurrently; add/remove need exclusive access arranged by the
// caller.
package router
