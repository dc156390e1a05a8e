package router

import (
	"fmt"
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/routeerr"
	"github.com/wayfind-dev/wayfind/pkg/routepath"
)

// Route is a compiled pattern plus builder-configurable metadata. Routes
// are constructed by FromPath, FromPattern, or Redirect, refined with the
// With* builders, and become immutable once handed to Router.AddRoute.
type Route struct {
	// Pattern is the canonical URL pattern: ":name" for required
	// parameters, ":name?" optional, "*name" catch-all, "*name?"
	// optional catch-all. Route groups and intercepting markers never
	// appear here.
	Pattern string

	// SourcePath is the original file path under the pages root, kept
	// for diagnostics. Empty for routes built from pattern strings.
	SourcePath string

	// Params are the route's parameters in pattern order.
	Params []Param

	// Priority is the sort key; lower wins. It is a pure function of
	// pattern shape, computed once at compile time.
	Priority int

	// Depth is the number of URL-contributing segments: groups, slot
	// markers, and intercepting markers do not count.
	Depth int

	DynamicCount  int
	OptionalCount int
	HasCatchAll   bool

	// Kind says what the route contributes; see ResourceKind.
	Kind ResourceKind

	// LayoutName is set for named layouts (_layout.<name>).
	LayoutName string

	// SlotName and SlotParent are set for parallel slot routes.
	SlotName   string
	SlotParent string

	// InterceptLevel, InterceptSource, and InterceptTarget are set for
	// intercepting routes. InterceptSource is the directory the marker
	// appeared in; InterceptTarget is the pattern the interception
	// points at, resolved per the level semantics.
	InterceptLevel  InterceptLevel
	InterceptSource string
	InterceptTarget string

	// Layout is the route's layout resolution policy.
	Layout LayoutOption

	// Name is the route's unique name, registered at AddRoute time.
	Name string

	// Aliases are alternative canonical patterns that match this route
	// but do not affect its position in the sorted list.
	Aliases []string

	// Meta is arbitrary string metadata attached by the caller.
	Meta map[string]string

	// RedirectTo and RedirectStatus are set on redirect routes.
	RedirectTo     string
	RedirectStatus int

	segs         []segment
	aliasSegs    [][]segment
	redirectSegs []segment

	// err holds a deferred builder failure (e.g. an alias that did not
	// compile); Router.AddRoute surfaces it.
	err error
}

// Redirect constructs a route that matches like a normal route but whose
// RouteMatch reports a redirect target computed by substituting the
// captured bindings into "to", with the given HTTP status.
func Redirect(from, to string, status int) (*Route, error) {
	route, err := FromPattern(from)
	if err != nil {
		return nil, err
	}
	tc, err := parseCanonical(to)
	if err != nil {
		return nil, err
	}
	route.RedirectTo = renderPattern(tc.segs)
	route.RedirectStatus = status
	route.redirectSegs = bindConstraints(tc.segs, route.Params)
	return route, nil
}

// WithLayoutOption sets the route's layout resolution policy.
func (r *Route) WithLayoutOption(opt LayoutOption) *Route {
	r.Layout = opt
	return r
}

// WithNoLayout renders the route standalone.
func (r *Route) WithNoLayout() *Route {
	return r.WithLayoutOption(LayoutOption{Kind: LayoutNone})
}

// WithRootLayout skips intermediate layouts and uses the root one.
func (r *Route) WithRootLayout() *Route {
	return r.WithLayoutOption(LayoutOption{Kind: LayoutRoot})
}

// WithNamedLayout uses the nearest layout registered under the name.
func (r *Route) WithNamedLayout(name string) *Route {
	return r.WithLayoutOption(LayoutOption{Kind: LayoutNamed, Value: name})
}

// WithLayoutPattern uses the layout registered at exactly the pattern.
func (r *Route) WithLayoutPattern(pattern string) *Route {
	return r.WithLayoutOption(LayoutOption{Kind: LayoutPattern, Value: routepath.NormalizePath(pattern)})
}

// WithName sets the route's unique name. Uniqueness is enforced when the
// route is added to a router.
func (r *Route) WithName(name string) *Route {
	r.Name = name
	return r
}

// WithAlias compiles pattern as a shadow of this route: it participates
// in matching with the same parameter set but does not affect the
// primary pattern's sort position. A pattern that fails to compile is
// recorded and surfaced by Router.AddRoute.
func (r *Route) WithAlias(pattern string) *Route {
	c, err := parseCanonical(pattern)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		return r
	}
	segs := bindConstraints(c.segs, r.Params)
	r.Aliases = append(r.Aliases, renderPattern(segs))
	r.aliasSegs = append(r.aliasSegs, segs)
	return r
}

// WithAliases adds each pattern in order.
func (r *Route) WithAliases(patterns ...string) *Route {
	for _, p := range patterns {
		r.WithAlias(p)
	}
	return r
}

// WithMeta sets one metadata key. Later writes to the same key replace.
func (r *Route) WithMeta(key, value string) *Route {
	if r.Meta == nil {
		r.Meta = make(map[string]string)
	}
	r.Meta[key] = value
	return r
}

// WithMetadata merges all entries of m into the route's metadata.
func (r *Route) WithMetadata(m map[string]string) *Route {
	for k, v := range m {
		r.WithMeta(k, v)
	}
	return r
}

// Matches reports whether path matches the route's primary pattern or
// any alias, returning the captured bindings. Matching is case-sensitive;
// the router applies its own case mode via an internal variant.
func (r *Route) Matches(path string) (map[string]string, bool) {
	return r.match(routepath.NormalizePath(path), false)
}

func (r *Route) match(normalized string, caseInsensitive bool) (map[string]string, bool) {
	if params, ok := matchSegments(r.segs, normalized, caseInsensitive); ok {
		return params, true
	}
	for _, alias := range r.aliasSegs {
		if params, ok := matchSegments(alias, normalized, caseInsensitive); ok {
			return params, true
		}
	}
	return nil, false
}

// matchSegments walks path segments in lock-step with the pattern
// tokens. Dynamic segments capture the raw segment (no percent-decoding)
// and fail the match on a constraint violation. Catch-alls capture the
// joined remainder.
func matchSegments(segs []segment, path string, caseInsensitive bool) (map[string]string, bool) {
	var pathSegs []string
	if trimmed := strings.TrimPrefix(path, "/"); trimmed != "" {
		pathSegs = strings.Split(trimmed, "/")
	}

	var params map[string]string
	bind := func(name, value string) {
		if params == nil {
			params = make(map[string]string, len(segs))
		}
		params[name] = value
	}

	pi := 0
	for _, s := range segs {
		switch s.kind {
		case segStatic:
			if pi >= len(pathSegs) || !segmentEqual(s.text, pathSegs[pi], caseInsensitive) {
				return nil, false
			}
			pi++
		case segParam:
			if pi >= len(pathSegs) {
				return nil, false
			}
			value := pathSegs[pi]
			if !s.constraint.Validate(value) {
				return nil, false
			}
			bind(s.text, value)
			pi++
		case segOptionalParam:
			if pi < len(pathSegs) {
				value := pathSegs[pi]
				if !s.constraint.Validate(value) {
					return nil, false
				}
				bind(s.text, value)
				pi++
			}
		case segCatchAll, segOptionalCatchAll:
			rest := pathSegs[pi:]
			if len(rest) == 0 {
				if s.kind == segCatchAll {
					return nil, false
				}
				bind(s.text, "")
				continue
			}
			for _, value := range rest {
				if !s.constraint.Validate(value) {
					return nil, false
				}
			}
			bind(s.text, strings.Join(rest, "/"))
			pi = len(pathSegs)
		}
	}
	if pi != len(pathSegs) {
		return nil, false
	}
	return params, true
}

// segmentEqual compares two segments, ASCII-lowering both sides in
// case-insensitive mode. Non-ASCII bytes compare raw.
func segmentEqual(a, b string, caseInsensitive bool) bool {
	if !caseInsensitive {
		return a == b
	}
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// GenerateURL substitutes params into the pattern. Required parameters
// must be present and satisfy their constraints; optional parameters are
// omitted when absent or empty; a catch-all value may contain "/".
func (r *Route) GenerateURL(params map[string]string) (string, error) {
	return generateFromSegments(r.segs, r.Pattern, params)
}

func generateFromSegments(segs []segment, pattern string, params map[string]string) (string, error) {
	var b strings.Builder
	for _, s := range segs {
		switch s.kind {
		case segStatic:
			b.WriteByte('/')
			b.WriteString(s.text)
		case segParam:
			value, ok := params[s.text]
			if !ok {
				return "", routeerr.NewMissingParameter(pattern, s.text)
			}
			if !s.constraint.Validate(value) {
				return "", routeerr.NewConstraintViolation(pattern, s.text, value)
			}
			b.WriteByte('/')
			b.WriteString(value)
		case segOptionalParam:
			value, ok := params[s.text]
			if !ok || value == "" {
				continue
			}
			if !s.constraint.Validate(value) {
				return "", routeerr.NewConstraintViolation(pattern, s.text, value)
			}
			b.WriteByte('/')
			b.WriteString(value)
		case segCatchAll, segOptionalCatchAll:
			value, ok := params[s.text]
			value = strings.Trim(value, "/")
			if !ok || value == "" {
				if s.kind == segCatchAll {
					return "", routeerr.NewMissingParameter(pattern, s.text)
				}
				continue
			}
			for _, part := range strings.Split(value, "/") {
				if !s.constraint.Validate(part) {
					return "", routeerr.NewConstraintViolation(pattern, s.text, part)
				}
			}
			b.WriteByte('/')
			b.WriteString(value)
		}
	}
	if b.Len() == 0 {
		return "/", nil
	}
	return b.String(), nil
}

// bindConstraints rebinds each dynamic token's constraint from the
// primary route's parameter set, matched by name. Tokens naming unknown
// parameters keep the Any constraint.
func bindConstraints(segs []segment, params []Param) []segment {
	out := make([]segment, len(segs))
	copy(out, segs)
	for i := range out {
		if !out[i].dynamic() {
			continue
		}
		for _, p := range params {
			if p.Name == out[i].text {
				out[i].constraint = p.Constraint
				break
			}
		}
	}
	return out
}

// String renders the route for diagnostics.
func (r *Route) String() string {
	if r.SourcePath != "" {
		return fmt.Sprintf("%s %s (%s)", r.Kind, r.Pattern, r.SourcePath)
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Pattern)
}
