package router

import (
	"github.com/wayfind-dev/wayfind/pkg/constraint"
)

// ResourceKind classifies what a compiled route contributes to the page
// tree. The kind is fixed by the pattern compiler and never changes after
// construction.
type ResourceKind int

const (
	// KindPage is a renderable leaf route.
	KindPage ResourceKind = iota
	// KindLayout is a wrapper applied to descendants via hierarchical
	// inheritance. A layout may carry a name (_layout.admin).
	KindLayout
	// KindError is a scoped error page.
	KindError
	// KindLoading is a scoped loading page.
	KindLoading
	// KindTemplate is a scoped template.
	KindTemplate
	// KindNotFound is a scoped 404 page.
	KindNotFound
	// KindNoLayoutMarker blocks layout inheritance for everything
	// strictly below its directory. It contributes nothing to matching.
	KindNoLayoutMarker
	// KindParallelSlot is a named region (@slot) rendered alongside the
	// main page at its parent path.
	KindParallelSlot
	// KindIntercepting captures navigation from a specific source
	// location, typically to render inline rather than full-page.
	KindIntercepting
)

func (k ResourceKind) String() string {
	switch k {
	case KindPage:
		return "page"
	case KindLayout:
		return "layout"
	case KindError:
		return "error"
	case KindLoading:
		return "loading"
	case KindTemplate:
		return "template"
	case KindNotFound:
		return "not-found"
	case KindNoLayoutMarker:
		return "nolayout"
	case KindParallelSlot:
		return "parallel-slot"
	case KindIntercepting:
		return "intercepting"
	default:
		return "unknown"
	}
}

// InterceptLevel says where an intercepting route's target resolves
// relative to the file that declared it.
type InterceptLevel int

const (
	// InterceptSameLevel corresponds to the "(.)" marker: the target
	// lives in the same directory.
	InterceptSameLevel InterceptLevel = iota
	// InterceptOneLevelUp corresponds to "(..)": the parent directory.
	InterceptOneLevelUp
	// InterceptFromRoot corresponds to "(...)": the pages root.
	InterceptFromRoot
	// InterceptTwoLevelsUp corresponds to "(....)": the grandparent
	// directory.
	InterceptTwoLevelsUp
)

func (l InterceptLevel) String() string {
	switch l {
	case InterceptSameLevel:
		return "(.)"
	case InterceptOneLevelUp:
		return "(..)"
	case InterceptFromRoot:
		return "(...)"
	case InterceptTwoLevelsUp:
		return "(....)"
	default:
		return "unknown"
	}
}

// LayoutOptionKind enumerates the layout resolution policies a route can
// carry.
type LayoutOptionKind int

const (
	// LayoutInherit walks up the hierarchy to the nearest layout. This
	// is the default.
	LayoutInherit LayoutOptionKind = iota
	// LayoutNone renders the route standalone, with no layout.
	LayoutNone
	// LayoutRoot skips every intermediate layout and uses the root one.
	LayoutRoot
	// LayoutNamed uses the nearest named layout (_layout.<name>).
	LayoutNamed
	// LayoutPattern uses the layout registered at an exact pattern.
	LayoutPattern
)

// LayoutOption is a route's layout resolution policy. Value carries the
// layout name for LayoutNamed and the pattern for LayoutPattern.
type LayoutOption struct {
	Kind  LayoutOptionKind
	Value string
}

// Param is a single route parameter: its name in pattern order plus the
// constraint its captured values must satisfy.
type Param struct {
	Name       string
	Constraint constraint.Constraint
}

// RouteMatch is the result of a successful match: the matched route and
// the captured parameter bindings. The Route pointer is borrowed from the
// router; each match allocates only the RouteMatch and its bindings map.
type RouteMatch struct {
	Route  *Route
	Params map[string]string
}

// RedirectTarget substitutes the captured bindings into the route's
// redirect target pattern. The second return is false when the matched
// route is not a redirect route.
func (m *RouteMatch) RedirectTarget() (string, bool) {
	if m == nil || m.Route == nil || m.Route.RedirectTo == "" {
		return "", false
	}
	url, err := generateFromSegments(m.Route.redirectSegs, m.Route.RedirectTo, m.Params)
	if err != nil {
		return "", false
	}
	return url, true
}

// RedirectStatus returns the HTTP status the redirect route was built
// with. The second return is false for non-redirect routes.
func (m *RouteMatch) RedirectStatus() (int, bool) {
	if m == nil || m.Route == nil || m.Route.RedirectTo == "" {
		return 0, false
	}
	return m.Route.RedirectStatus, true
}
