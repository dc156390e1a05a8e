package constraint

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		kind  Kind
		value string
		want  bool
	}{
		{Any, "", true},
		{Any, "anything/goes", true},
		{Int, "123", true},
		{Int, "-456", true},
		{Int, "+7", true},
		{Int, "abc", false},
		{Int, "", false},
		{Int, "-", false},
		{UInt, "123", true},
		{UInt, "-1", false},
		{UInt, "", false},
		{Alpha, "hello", true},
		{Alpha, "hello123", false},
		{AlphaNum, "abc123", true},
		{AlphaNum, "abc-123", false},
		{Slug, "hello-world", true},
		{Slug, "Hello-World", false},
		{Slug, "hello_world", false},
		{Uuid, "550e8400-e29b-41d4-a716-446655440000", true},
		{Uuid, "not-a-uuid", false},
		{Uuid, "550e8400e29b41d4a716446655440000", false},
	}
	for _, tt := range tests {
		c := Constraint{Kind: tt.kind}
		if got := c.Validate(tt.value); got != tt.want {
			t.Errorf("%s.Validate(%q) = %v, want %v", tt.kind, tt.value, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		token string
		want  Kind
	}{
		{"", Any},
		{"int", Int},
		{"uint", UInt},
		{"alpha", Alpha},
		{"alphanum", AlphaNum},
		{"slug", Slug},
		{"uuid", Uuid},
		{"^[a-z]+$", Regex},
	}
	for _, tt := range tests {
		c := Parse(tt.token)
		if c.Kind != tt.want {
			t.Errorf("Parse(%q).Kind = %s, want %s", tt.token, c.Kind, tt.want)
		}
	}
	if c := Parse("^[a-z]+$"); c.Pattern != "^[a-z]+$" {
		t.Errorf("Parse regex pattern not preserved: %q", c.Pattern)
	}
}

func TestRegexValidateIsVacuous(t *testing.T) {
	c := Constraint{Kind: Regex, Pattern: "^[0-9]+$"}
	if !c.Validate("not-numeric-at-all") {
		t.Error("Regex.Validate should be vacuously true without a wired engine")
	}
}
