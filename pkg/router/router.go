package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/routeerr"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// Router holds the sorted route list and the indexed tables every
// scoped-resource lookup runs against. It is a passive data structure:
// reads are lock-free and safe to run concurrently; writers need
// exclusive access coordinated by the caller.
type Router struct {
	caseInsensitive bool

	// routes is sorted ascending by (Priority, insertion order). Pages,
	// parallel slots, and intercepting routes all live here; the
	// special kinds live only in the tables below.
	routes []*Route

	layouts       map[string]*Route
	namedLayouts  map[string]map[string]*Route
	errorPages    map[string]*Route
	loadingPages  map[string]*Route
	templates     map[string]*Route
	notFoundPages map[string]*Route

	nolayoutBarriers map[string]struct{}

	// parallel maps parent pattern → slot name → route.
	parallel map[string]map[string]*Route

	byName  map[string]*Route
	byAlias map[string]*Route
}

// Option configures a Router at construction.
type Option func(*Router)

// WithCaseInsensitive makes static-segment comparison ASCII
// case-insensitive at match time. Patterns are not reparsed.
func WithCaseInsensitive() Option {
	return func(r *Router) { r.caseInsensitive = true }
}

// New creates an empty router.
func New(opts ...Option) *Router {
	r := &Router{
		layouts:          make(map[string]*Route),
		namedLayouts:     make(map[string]map[string]*Route),
		errorPages:       make(map[string]*Route),
		loadingPages:     make(map[string]*Route),
		templates:        make(map[string]*Route),
		notFoundPages:    make(map[string]*Route),
		nolayoutBarriers: make(map[string]struct{}),
		parallel:         make(map[string]map[string]*Route),
		byName:           make(map[string]*Route),
		byAlias:          make(map[string]*Route),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CaseInsensitive reports whether the router folds ASCII case when
// comparing static segments.
func (r *Router) CaseInsensitive() bool { return r.caseInsensitive }

// AddRoute registers a compiled route. Special kinds index into their
// table; pages, slots, and intercepting routes enter the sorted list.
// Adding a route with an identical canonical pattern and identical kind
// replaces the previous entry in place. On any error the router is
// unchanged.
func (r *Router) AddRoute(route *Route) error {
	if route == nil {
		return fmt.Errorf("router: nil route")
	}
	if route.err != nil {
		return route.err
	}
	if route.Name != "" {
		if existing, ok := r.byName[route.Name]; ok && !sameIdentity(existing, route) {
			return routeerr.NewNameCollision(route.Name, existing.Pattern, route.Pattern)
		}
	}

	switch route.Kind {
	case KindLayout:
		if route.LayoutName != "" {
			slots := r.namedLayouts[route.Pattern]
			if slots == nil {
				slots = make(map[string]*Route)
				r.namedLayouts[route.Pattern] = slots
			}
			r.replaceInTable(slots, route.LayoutName, route)
		} else {
			r.replaceInTable(r.layouts, route.Pattern, route)
		}
	case KindError:
		r.replaceInTable(r.errorPages, route.Pattern, route)
	case KindLoading:
		r.replaceInTable(r.loadingPages, route.Pattern, route)
	case KindTemplate:
		r.replaceInTable(r.templates, route.Pattern, route)
	case KindNotFound:
		r.replaceInTable(r.notFoundPages, route.Pattern, route)
	case KindNoLayoutMarker:
		r.nolayoutBarriers[route.Pattern] = struct{}{}
	default:
		r.insertSorted(route)
		if route.Kind == KindParallelSlot {
			slots := r.parallel[route.SlotParent]
			if slots == nil {
				slots = make(map[string]*Route)
				r.parallel[route.SlotParent] = slots
			}
			slots[route.SlotName] = route
		}
	}

	if route.Name != "" {
		r.byName[route.Name] = route
	}
	for _, alias := range route.Aliases {
		// Alias collisions shadow by insertion order: first wins.
		if _, taken := r.byAlias[alias]; !taken {
			r.byAlias[alias] = route
		}
	}
	return nil
}

// replaceInTable swaps the table entry, releasing the replaced route's
// name and alias registrations.
func (r *Router) replaceInTable(table map[string]*Route, key string, route *Route) {
	if old, ok := table[key]; ok && old != route {
		r.unregister(old)
	}
	table[key] = route
}

// sameIdentity reports whether two routes occupy the same registration
// slot: identical canonical pattern and kind, and for slots and
// intercepting routes the same slot name or interception target.
func sameIdentity(a, b *Route) bool {
	if a.Pattern != b.Pattern || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindParallelSlot:
		return a.SlotName == b.SlotName
	case KindIntercepting:
		return a.InterceptLevel == b.InterceptLevel && a.InterceptTarget == b.InterceptTarget
	default:
		return true
	}
}

// insertSorted places the route after every entry of equal or lower
// priority, so insertion order breaks exact ties. Replacing an existing
// entry with the same identity keeps its slot, so tie-breaks stay stable
// across re-registration.
func (r *Router) insertSorted(route *Route) {
	for i, existing := range r.routes {
		if sameIdentity(existing, route) {
			r.unregister(existing)
			r.routes[i] = route
			return
		}
	}
	idx := sort.Search(len(r.routes), func(i int) bool {
		return r.routes[i].Priority > route.Priority
	})
	r.routes = append(r.routes, nil)
	copy(r.routes[idx+1:], r.routes[idx:])
	r.routes[idx] = route
}

// unregister clears name and alias entries pointing at the route.
func (r *Router) unregister(route *Route) {
	if route.Name != "" && r.byName[route.Name] == route {
		delete(r.byName, route.Name)
	}
	for alias, rt := range r.byAlias {
		if rt == route {
			delete(r.byAlias, alias)
		}
	}
}

// RemoveRoute removes every registration under the canonical pattern:
// the sorted list, every table, barriers, slots, names, and aliases.
func (r *Router) RemoveRoute(pattern string) {
	p := routepath.NormalizePath(pattern)

	kept := r.routes[:0]
	for _, rt := range r.routes {
		if rt.Pattern == p {
			r.unregister(rt)
			continue
		}
		kept = append(kept, rt)
	}
	r.routes = kept

	for _, table := range []map[string]*Route{
		r.layouts, r.errorPages, r.loadingPages, r.templates, r.notFoundPages,
	} {
		if rt, ok := table[p]; ok {
			r.unregister(rt)
			delete(table, p)
		}
	}
	if slots, ok := r.namedLayouts[p]; ok {
		for _, rt := range slots {
			r.unregister(rt)
		}
		delete(r.namedLayouts, p)
	}
	delete(r.nolayoutBarriers, p)

	for parent, slots := range r.parallel {
		for name, rt := range slots {
			if rt.Pattern == p {
				delete(slots, name)
			}
		}
		if len(slots) == 0 {
			delete(r.parallel, parent)
		}
	}
}

// MatchRoute normalizes path and scans the sorted list, returning the
// first route whose primary pattern or any alias matches. Intercepting
// routes are invisible here; use MatchRouteFrom for navigations that
// carry a source. No match returns nil.
func (r *Router) MatchRoute(path string) *RouteMatch {
	p := routepath.NormalizePath(path)
	for _, rt := range r.routes {
		if rt.Kind == KindIntercepting {
			continue
		}
		if params, ok := rt.match(p, r.caseInsensitive); ok {
			return &RouteMatch{Route: rt, Params: params}
		}
	}
	return nil
}

// MatchRouteFrom matches path for a navigation originating at source.
// Intercepting routes whose source directory contains the origin are
// consulted first, in priority order; otherwise the plain match applies.
func (r *Router) MatchRouteFrom(path, source string) *RouteMatch {
	p := routepath.NormalizePath(path)
	src := routepath.NormalizePath(source)
	for _, rt := range r.routes {
		if rt.Kind != KindIntercepting {
			continue
		}
		if !underOrEqual(src, rt.InterceptSource) {
			continue
		}
		if params, ok := rt.match(p, r.caseInsensitive); ok {
			return &RouteMatch{Route: rt, Params: params}
		}
	}
	return r.MatchRoute(path)
}

// underOrEqual reports whether path is dir itself or lies below it.
func underOrEqual(path, dir string) bool {
	if dir == "/" || path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+"/")
}

// GetInterceptingRoute returns the intercepting route whose effective
// pattern matches the URL, or nil.
func (r *Router) GetInterceptingRoute(effectiveURL string) *Route {
	p := routepath.NormalizePath(effectiveURL)
	for _, rt := range r.routes {
		if rt.Kind != KindIntercepting {
			continue
		}
		if _, ok := rt.match(p, r.caseInsensitive); ok {
			return rt
		}
	}
	return nil
}

// scoped walks the parent hierarchy and returns the first table hit.
func (r *Router) scoped(pattern string, table map[string]*Route) *Route {
	p := routepath.NormalizePath(pattern)
	for q := range routepath.PathHierarchy(p) {
		if rt, ok := table[q]; ok {
			return rt
		}
	}
	return nil
}

// GetLayout resolves the layout for a pattern. The walk honors the
// pattern's own LayoutOption when a route is registered at exactly that
// pattern, and a _nolayout barrier on the way up blocks inheritance.
func (r *Router) GetLayout(pattern string) *Route {
	p := routepath.NormalizePath(pattern)

	opt := LayoutOption{Kind: LayoutInherit}
	if rt := r.routeByPattern(p); rt != nil {
		opt = rt.Layout
	}

	switch opt.Kind {
	case LayoutNone:
		return nil
	case LayoutRoot:
		return r.layouts["/"]
	case LayoutPattern:
		return r.layouts[routepath.NormalizePath(opt.Value)]
	case LayoutNamed:
		for q := range routepath.PathHierarchy(p) {
			if slots := r.namedLayouts[q]; slots != nil {
				if rt, ok := slots[opt.Value]; ok {
					return rt
				}
			}
		}
		return nil
	default:
		first := true
		for q := range routepath.PathHierarchy(p) {
			// A barrier at q blocks everything strictly under q, so
			// the query path itself is exempt.
			if !first {
				if _, barred := r.nolayoutBarriers[q]; barred {
					return nil
				}
			}
			if rt, ok := r.layouts[q]; ok {
				return rt
			}
			first = false
		}
		return nil
	}
}

// GetErrorPage returns the nearest error page at or above the pattern.
func (r *Router) GetErrorPage(pattern string) *Route {
	return r.scoped(pattern, r.errorPages)
}

// GetLoadingPage returns the nearest loading page at or above the pattern.
func (r *Router) GetLoadingPage(pattern string) *Route {
	return r.scoped(pattern, r.loadingPages)
}

// GetTemplate returns the nearest template at or above the pattern.
func (r *Router) GetTemplate(pattern string) *Route {
	return r.scoped(pattern, r.templates)
}

// GetNotFoundPage returns the nearest not-found page at or above the
// pattern.
func (r *Router) GetNotFoundPage(pattern string) *Route {
	return r.scoped(pattern, r.notFoundPages)
}

// GetParallelRoutes returns the slot map rendered in parallel at the
// parent pattern. The map is a borrowed view; callers must not mutate it.
func (r *Router) GetParallelRoutes(parent string) map[string]*Route {
	return r.parallel[routepath.NormalizePath(parent)]
}

// GetParallelRoute returns the specific slot route at the parent.
func (r *Router) GetParallelRoute(parent, slot string) *Route {
	return r.parallel[routepath.NormalizePath(parent)][slot]
}

// GetRouteByName returns the route registered under the name, or nil.
func (r *Router) GetRouteByName(name string) *Route {
	return r.byName[name]
}

// URLFor generates a URL from a named route and parameter bindings.
func (r *Router) URLFor(name string, params map[string]string) (string, error) {
	rt := r.byName[name]
	if rt == nil {
		return "", fmt.Errorf("router: no route named %q", name)
	}
	return rt.GenerateURL(params)
}

// routeByPattern returns the first sorted-list route whose canonical
// pattern equals p.
func (r *Router) routeByPattern(p string) *Route {
	for _, rt := range r.routes {
		if rt.Pattern == p {
			return rt
		}
	}
	return nil
}

// Routes returns the sorted route list as a borrowed view.
func (r *Router) Routes() []*Route { return r.routes }

// Layouts returns the unnamed layout table as a borrowed view.
func (r *Router) Layouts() map[string]*Route { return r.layouts }

// NamedLayouts returns the named layout table as a borrowed view.
func (r *Router) NamedLayouts() map[string]map[string]*Route { return r.namedLayouts }

// ErrorPages returns the error page table as a borrowed view.
func (r *Router) ErrorPages() map[string]*Route { return r.errorPages }

// LoadingPages returns the loading page table as a borrowed view.
func (r *Router) LoadingPages() map[string]*Route { return r.loadingPages }

// Templates returns the template table as a borrowed view.
func (r *Router) Templates() map[string]*Route { return r.templates }

// NotFoundPages returns the not-found table as a borrowed view.
func (r *Router) NotFoundPages() map[string]*Route { return r.notFoundPages }

// NoLayoutBarriers returns the barrier set as a borrowed view.
func (r *Router) NoLayoutBarriers() map[string]struct{} { return r.nolayoutBarriers }

// ParallelRoutes returns the full parent → slot → route table.
func (r *Router) ParallelRoutes() map[string]map[string]*Route { return r.parallel }

// Aliases returns the alias table as a borrowed view.
func (r *Router) Aliases() map[string]*Route { return r.byAlias }
