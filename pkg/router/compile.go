package router

import (
	"strings"

	"github.com/wayfind-dev/wayfind/pkg/constraint"
	"github.com/wayfind-dev/wayfind/pkg/routeerr"
)

// segmentKind discriminates the token types a compiled pattern is made of.
type segmentKind int

const (
	segStatic segmentKind = iota
	segParam
	segOptionalParam
	segCatchAll
	segOptionalCatchAll
)

// segment is one token of a compiled pattern. text is the literal for
// static segments and the parameter name otherwise.
type segment struct {
	kind       segmentKind
	text       string
	constraint constraint.Constraint
}

func (s segment) dynamic() bool { return s.kind != segStatic }

func (s segment) canonical() string {
	switch s.kind {
	case segParam:
		return ":" + s.text
	case segOptionalParam:
		return ":" + s.text + "?"
	case segCatchAll:
		return "*" + s.text
	case segOptionalCatchAll:
		return "*" + s.text + "?"
	default:
		return s.text
	}
}

// interceptMarkers maps the recognized marker segments to their level.
var interceptMarkers = map[string]InterceptLevel{
	"(.)":    InterceptSameLevel,
	"(..)":   InterceptOneLevelUp,
	"(...)":  InterceptFromRoot,
	"(....)": InterceptTwoLevelsUp,
}

// FromPath compiles a file path under the pages root into a Route. The
// path uses "/" as separator; the leaf's file extension is irrelevant.
//
//	FromPath("pages/users/[id:uint].html", "pages")   → /users/:id
//	FromPath("pages/docs/[...slug].html", "pages")    → /docs/*slug
//	FromPath("pages/dashboard/_layout.html", "pages") → layout at /dashboard
//
// Compilation failures return a classified *routeerr.Error and no route.
func FromPath(filePath, pagesDir string) (*Route, error) {
	rel := strings.ReplaceAll(filePath, "\\", "/")
	root := strings.TrimSuffix(strings.ReplaceAll(pagesDir, "\\", "/"), "/")
	switch {
	case root == "":
	case rel == root:
		rel = ""
	case strings.HasPrefix(rel, root+"/"):
		rel = rel[len(root)+1:]
	}
	rel = strings.Trim(rel, "/")

	segs := strings.Split(rel, "/")

	// The stem (leaf minus extension) decides the resource kind. A dot
	// inside a bracket form ("[...slug]") is part of the token, not an
	// extension, so only a dot after the last "]" counts.
	stem := segs[len(segs)-1]
	if idx := strings.LastIndexByte(stem, '.'); idx > 0 && idx > strings.LastIndexByte(stem, ']') {
		stem = stem[:idx]
	}
	if stem == "" {
		return nil, routeerr.NewInvalidPattern(filePath, routeerr.EmptySegment, "empty file stem")
	}

	kind := KindPage
	layoutName := ""
	leafContributes := true
	switch {
	case stem == "index":
		leafContributes = false
	case stem == "_layout":
		kind, leafContributes = KindLayout, false
	case strings.HasPrefix(stem, "_layout."):
		layoutName = strings.TrimPrefix(stem, "_layout.")
		if layoutName == "" {
			return nil, routeerr.NewInvalidPattern(filePath, routeerr.EmptySegment, "empty layout name")
		}
		kind, leafContributes = KindLayout, false
	case stem == "_error":
		kind, leafContributes = KindError, false
	case stem == "loading":
		kind, leafContributes = KindLoading, false
	case stem == "not-found":
		kind, leafContributes = KindNotFound, false
	case stem == "_template":
		kind, leafContributes = KindTemplate, false
	case stem == "_nolayout":
		kind, leafContributes = KindNoLayoutMarker, false
	}

	c := compiler{sourcePath: filePath}
	for i, seg := range segs {
		last := i == len(segs)-1
		if last {
			if !leafContributes {
				break
			}
			seg = stem
		}
		if err := c.segment(seg); err != nil {
			return nil, err
		}
	}

	route := c.finish(kind)
	route.SourcePath = filePath
	route.LayoutName = layoutName
	return route, nil
}

// FromPattern compiles a canonical URL pattern string (":name", ":name?",
// "*name", "*name?" tokens) into a page route. Constraints cannot be
// expressed in this form; every parameter gets the Any constraint.
func FromPattern(pattern string) (*Route, error) {
	c, err := parseCanonical(pattern)
	if err != nil {
		return nil, err
	}
	return c.finish(KindPage), nil
}

// parseCanonical tokenizes a canonical pattern string through the same
// ordering checks the filesystem compiler applies.
func parseCanonical(pattern string) (*compiler, error) {
	c := &compiler{sourcePath: pattern}
	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return c, nil
	}
	for _, seg := range strings.Split(trimmed, "/") {
		if seg == "" {
			return nil, routeerr.NewInvalidPattern(pattern, routeerr.EmptySegment, "empty segment in pattern")
		}
		if err := c.patternToken(seg); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// compiler accumulates state while classifying segments left to right.
type compiler struct {
	sourcePath string

	segs   []segment
	params []Param
	seen   map[string]bool

	hasCatchAll      bool
	optionalCatchAll bool
	hasOptionalTail  bool
	dynamicCount     int
	optionalCount    int

	isSlot     bool
	slotName   string
	slotParent int // index into segs where the slot marker appeared

	isIntercept    bool
	interceptLevel InterceptLevel
	interceptAt    int // index into segs where the marker appeared
}

// segment classifies one filesystem segment, erasing groups, intercept
// markers, and slot markers, and appending everything else to the pattern.
func (c *compiler) segment(seg string) error {
	if seg == "" {
		return routeerr.NewInvalidPattern(c.sourcePath, routeerr.EmptySegment, "empty path segment")
	}

	if level, ok := interceptMarkers[seg]; ok {
		if c.isIntercept {
			return routeerr.NewInvalidPattern(c.sourcePath, routeerr.UnknownBracketForm,
				"more than one intercepting marker")
		}
		c.isIntercept = true
		c.interceptLevel = level
		c.interceptAt = len(c.segs)
		return nil
	}

	if strings.HasPrefix(seg, "(") && strings.HasSuffix(seg, ")") {
		if len(seg) == 2 {
			return routeerr.NewInvalidPattern(c.sourcePath, routeerr.EmptySegment, "empty route group")
		}
		// Route group: organizational only, erased from the pattern.
		return nil
	}

	if strings.HasPrefix(seg, "@") {
		name := seg[1:]
		if name == "" {
			return routeerr.NewInvalidPattern(c.sourcePath, routeerr.EmptySegment, "empty slot name")
		}
		if !c.isSlot {
			c.isSlot = true
			c.slotName = name
			c.slotParent = len(c.segs)
		}
		return nil
	}

	if strings.HasPrefix(seg, "[") {
		s, err := c.parseBracket(seg)
		if err != nil {
			return err
		}
		return c.append(s)
	}

	return c.append(segment{kind: segStatic, text: seg})
}

// patternToken classifies one token of a canonical pattern string.
func (c *compiler) patternToken(tok string) error {
	s := segment{kind: segStatic, text: tok, constraint: constraint.AnyConstraint}
	switch {
	case strings.HasPrefix(tok, ":"):
		s.kind = segParam
		s.text = tok[1:]
		if strings.HasSuffix(s.text, "?") {
			s.kind = segOptionalParam
			s.text = strings.TrimSuffix(s.text, "?")
		}
	case strings.HasPrefix(tok, "*"):
		s.kind = segCatchAll
		s.text = tok[1:]
		if strings.HasSuffix(s.text, "?") {
			s.kind = segOptionalCatchAll
			s.text = strings.TrimSuffix(s.text, "?")
		}
	}
	if s.dynamic() && s.text == "" {
		return routeerr.NewInvalidPattern(c.sourcePath, routeerr.EmptySegment, "empty parameter name")
	}
	return c.append(s)
}

// parseBracket decodes the recognized bracket forms:
//
//	[name]             required parameter
//	[name?]            optional parameter
//	[name:constraint]  constrained parameter (also with ?)
//	[...name]          catch-all
//	[[...name]]        optional catch-all
func (c *compiler) parseBracket(seg string) (segment, error) {
	var inner string
	kind := segParam

	switch {
	case strings.HasPrefix(seg, "[[") && strings.HasSuffix(seg, "]]"):
		inner = seg[2 : len(seg)-2]
		if !strings.HasPrefix(inner, "...") {
			return segment{}, routeerr.NewInvalidPattern(c.sourcePath, routeerr.UnknownBracketForm,
				"double brackets require a catch-all: "+seg)
		}
		inner = strings.TrimPrefix(inner, "...")
		kind = segOptionalCatchAll
	case strings.HasSuffix(seg, "]"):
		inner = seg[1 : len(seg)-1]
		if strings.HasPrefix(inner, "...") {
			inner = strings.TrimPrefix(inner, "...")
			kind = segCatchAll
		} else if strings.HasSuffix(inner, "?") {
			inner = strings.TrimSuffix(inner, "?")
			kind = segOptionalParam
		}
	default:
		return segment{}, routeerr.NewInvalidPattern(c.sourcePath, routeerr.UnknownBracketForm,
			"unterminated bracket segment: "+seg)
	}

	name := inner
	cons := constraint.AnyConstraint
	if idx := strings.IndexByte(inner, ':'); idx >= 0 {
		name = inner[:idx]
		tok := inner[idx+1:]
		// The ? suffix binds to the whole segment, not the constraint.
		if strings.HasSuffix(tok, "?") && kind == segParam {
			tok = strings.TrimSuffix(tok, "?")
			kind = segOptionalParam
		}
		if tok == "" {
			return segment{}, routeerr.NewConstraintParse(c.sourcePath, tok,
				"empty constraint token in "+seg)
		}
		cons = constraint.Parse(tok)
	}
	if name == "" {
		return segment{}, routeerr.NewInvalidPattern(c.sourcePath, routeerr.EmptySegment,
			"empty parameter name in "+seg)
	}
	if strings.ContainsAny(name, "[]?*:") {
		return segment{}, routeerr.NewInvalidPattern(c.sourcePath, routeerr.UnknownBracketForm,
			"malformed parameter name in "+seg)
	}
	return segment{kind: kind, text: name, constraint: cons}, nil
}

// append enforces ordering rules (one catch-all, catch-all last, optional
// last, unique names) and records the segment.
func (c *compiler) append(s segment) error {
	if c.hasCatchAll {
		if s.kind == segCatchAll || s.kind == segOptionalCatchAll {
			return routeerr.NewInvalidPattern(c.sourcePath, routeerr.MultipleCatchAll,
				"more than one catch-all parameter")
		}
		return routeerr.NewInvalidPattern(c.sourcePath, routeerr.CatchAllNotLast,
			"segment after catch-all parameter")
	}
	if c.hasOptionalTail {
		return routeerr.NewInvalidPattern(c.sourcePath, routeerr.OptionalNotLast,
			"segment after optional parameter")
	}

	if s.dynamic() {
		if c.seen == nil {
			c.seen = make(map[string]bool)
		}
		if c.seen[s.text] {
			return routeerr.NewInvalidPattern(c.sourcePath, routeerr.UnknownBracketForm,
				"duplicate parameter name "+s.text)
		}
		c.seen[s.text] = true
		c.params = append(c.params, Param{Name: s.text, Constraint: s.constraint})
		c.dynamicCount++
	}

	switch s.kind {
	case segCatchAll:
		c.hasCatchAll = true
	case segOptionalCatchAll:
		c.hasCatchAll = true
		c.optionalCatchAll = true
		c.optionalCount++
	case segOptionalParam:
		c.hasOptionalTail = true
		c.optionalCount++
	}

	c.segs = append(c.segs, s)
	return nil
}

// finish assembles the Route from the accumulated state.
func (c *compiler) finish(kind ResourceKind) *Route {
	depth := len(c.segs)
	route := &Route{
		Pattern:       renderPattern(c.segs),
		Kind:          kind,
		Depth:         depth,
		DynamicCount:  c.dynamicCount,
		OptionalCount: c.optionalCount,
		HasCatchAll:   c.hasCatchAll,
		Priority:      calculatePriority(c.hasCatchAll, c.optionalCatchAll, c.dynamicCount, c.optionalCount, depth),
		Params:        c.params,
		Layout:        LayoutOption{Kind: LayoutInherit},
		segs:          c.segs,
	}

	if c.isSlot && kind == KindPage {
		route.Kind = KindParallelSlot
		route.SlotName = c.slotName
		route.SlotParent = renderPattern(c.segs[:c.slotParent])
	}
	if c.isIntercept && (route.Kind == KindPage || route.Kind == KindParallelSlot) {
		route.Kind = KindIntercepting
		route.InterceptLevel = c.interceptLevel
		before := c.segs[:c.interceptAt]
		after := c.segs[c.interceptAt:]
		route.InterceptSource = renderPattern(before)
		route.InterceptTarget = interceptTarget(c.interceptLevel, before, after)
	}
	return route
}

// interceptTarget resolves the target pattern for the given level: the
// segments after the marker, rebased per the marker's semantics.
func interceptTarget(level InterceptLevel, before, after []segment) string {
	base := before
	switch level {
	case InterceptFromRoot:
		base = nil
	case InterceptOneLevelUp:
		if len(base) > 0 {
			base = base[:len(base)-1]
		}
	case InterceptTwoLevelsUp:
		if len(base) > 1 {
			base = base[:len(base)-2]
		} else {
			base = nil
		}
	}
	joined := make([]segment, 0, len(base)+len(after))
	joined = append(joined, base...)
	joined = append(joined, after...)
	return renderPattern(joined)
}

// renderPattern produces the canonical URL form of a token list.
func renderPattern(segs []segment) string {
	if len(segs) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(s.canonical())
	}
	return b.String()
}

// calculatePriority maps pattern shape to the sort key: lower wins.
// Static routes are 0; dynamic routes sort after every static route of
// equal depth; required catch-alls follow all non-catch-alls; an optional
// catch-all follows its required sibling.
func calculatePriority(hasCatchAll, optionalCatchAll bool, dynamicCount, optionalCount, depth int) int {
	switch {
	case optionalCatchAll:
		return 2000 + depth
	case hasCatchAll:
		return 1000 + depth
	case dynamicCount > 0:
		bonus := 0
		if optionalCount > 0 {
			bonus = 1
		}
		return dynamicCount + depth + bonus
	default:
		return 0
	}
}
