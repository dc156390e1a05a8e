// Package routeerr defines the classified error kinds the router and its
// pattern compiler raise: registration failures are always surfaced to the
// caller with enough context to fix the offending route, while a failed
// match is never an error at all — just an absent result.
package routeerr

import "fmt"

// Kind distinguishes the error categories the router can raise.
type Kind string

const (
	// InvalidPattern means the pattern compiler refused a source path.
	// See Reason for the specific sub-cause.
	InvalidPattern Kind = "invalid_pattern"
	// ConstraintParse means a constraint token could not be interpreted.
	ConstraintParse Kind = "constraint_parse"
	// NameCollision means a route name was already in use at
	// registration time.
	NameCollision Kind = "name_collision"
	// MissingParameter means URL generation was attempted without a
	// binding required by the pattern.
	MissingParameter Kind = "missing_parameter"
	// ConstraintViolation means a bound or supplied value failed its
	// parameter's constraint.
	ConstraintViolation Kind = "constraint_violation"
)

// Reason refines an InvalidPattern error with its specific sub-cause.
type Reason string

const (
	MultipleCatchAll   Reason = "multiple_catch_all"
	CatchAllNotLast    Reason = "catch_all_not_last"
	OptionalNotLast    Reason = "optional_not_last"
	EmptySegment       Reason = "empty_segment"
	UnknownBracketForm Reason = "unknown_bracket_form"
)

// Error is the concrete error type returned by the compiler and the
// router for every registration or generation failure.
type Error struct {
	Kind Kind
	// Reason is populated only when Kind == InvalidPattern.
	Reason Reason

	// SourcePath is the original file path under the pages root, when
	// known, for diagnostics.
	SourcePath string
	// Pattern is the canonical pattern involved, when known.
	Pattern string
	// Parameter is the parameter name involved, for MissingParameter and
	// ConstraintViolation.
	Parameter string
	// Value is the offending value, for ConstraintViolation.
	Value string

	Message string
	Wrapped error
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidPattern:
		if e.SourcePath != "" {
			return fmt.Sprintf("invalid pattern (%s): %s [%s]", e.Reason, e.Message, e.SourcePath)
		}
		return fmt.Sprintf("invalid pattern (%s): %s", e.Reason, e.Message)
	case ConstraintParse:
		return fmt.Sprintf("constraint parse: %s", e.Message)
	case NameCollision:
		return fmt.Sprintf("name collision: %s", e.Message)
	case MissingParameter:
		return fmt.Sprintf("missing parameter %q for pattern %q", e.Parameter, e.Pattern)
	case ConstraintViolation:
		return fmt.Sprintf("parameter %q value %q violates its constraint in pattern %q", e.Parameter, e.Value, e.Pattern)
	default:
		return e.Message
	}
}

// Unwrap supports errors.Is/errors.As against a wrapped cause.
func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, routeerr.ErrKind(routeerr.NameCollision)).
// This holds for a target that carries only a Kind (as ErrKind builds);
// a target with its Pattern, Parameter, Message, or SourcePath set
// matches only an error equal to it field for field.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if other.Pattern == "" && other.Parameter == "" && other.Message == "" && other.SourcePath == "" {
		return e.Kind == other.Kind
	}
	return *e == *other
}

// NewInvalidPattern builds an InvalidPattern error for the given source
// path and sub-reason.
func NewInvalidPattern(sourcePath string, reason Reason, message string) *Error {
	return &Error{Kind: InvalidPattern, Reason: reason, SourcePath: sourcePath, Message: message}
}

// NewConstraintParse builds a ConstraintParse error for a token the
// compiler could not interpret.
func NewConstraintParse(sourcePath, token, message string) *Error {
	return &Error{Kind: ConstraintParse, SourcePath: sourcePath, Message: message, Value: token}
}

// NewNameCollision builds a NameCollision error for route registration.
func NewNameCollision(name, existingPattern, newPattern string) *Error {
	return &Error{
		Kind:    NameCollision,
		Pattern: newPattern,
		Message: fmt.Sprintf("name %q already registered for pattern %q", name, existingPattern),
	}
}

// NewMissingParameter builds a MissingParameter error for URL generation.
func NewMissingParameter(pattern, parameter string) *Error {
	return &Error{Kind: MissingParameter, Pattern: pattern, Parameter: parameter}
}

// NewConstraintViolation builds a ConstraintViolation error for a matched
// or generated value that fails its parameter's constraint.
func NewConstraintViolation(pattern, parameter, value string) *Error {
	return &Error{Kind: ConstraintViolation, Pattern: pattern, Parameter: parameter, Value: value}
}

// ErrKind returns a sentinel *Error carrying only a Kind, suitable for use
// with errors.Is to test the category of an error without comparing its
// full contents.
func ErrKind(k Kind) *Error { return &Error{Kind: k} }
