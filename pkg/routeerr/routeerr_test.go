package routeerr

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "invalid pattern",
			err:  NewInvalidPattern("pages/[...a]/[...b]", MultipleCatchAll, "only one catch-all is permitted"),
			want: "invalid pattern (multiple_catch_all): only one catch-all is permitted [pages/[...a]/[...b]]",
		},
		{
			name: "missing parameter",
			err:  NewMissingParameter("/users/:id", "id"),
			want: `missing parameter "id" for pattern "/users/:id"`,
		},
		{
			name: "constraint violation",
			err:  NewConstraintViolation("/users/:id", "id", "abc"),
			want: `parameter "id" value "abc" violates its constraint in pattern "/users/:id"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorIsKind(t *testing.T) {
	err := NewNameCollision("home", "/", "/home")
	if !errors.Is(err, ErrKind(NameCollision)) {
		t.Error("expected errors.Is to match on Kind")
	}
	if errors.Is(err, ErrKind(MissingParameter)) {
		t.Error("expected errors.Is to not match a different Kind")
	}
}

func TestFormatCompactIncludesSourcePath(t *testing.T) {
	err := NewInvalidPattern("pages/[id]/[id].go", EmptySegment, "duplicate parameter name")
	got := err.FormatCompact()
	if got == "" {
		t.Fatal("expected non-empty compact format")
	}
	if !strings.Contains(got, "pages/[id]/[id].go") {
		t.Errorf("FormatCompact() = %q, want it to include the source path", got)
	}
}
