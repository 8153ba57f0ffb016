package concierge

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		in      any
		want    any
		wantErr bool
	}{
		{"int from string", IntRule(), "42", int64(42), false},
		{"int passthrough", IntRule(), int64(7), int64(7), false},
		{"int counter", IntRule(), 3, int64(3), false},
		{"int invalid", IntRule(), "abc", nil, true},
		{"float", FloatRule(), "2.5", 2.5, false},
		{"bool from string", BoolRule(), "true", true, false},
		{"bool passthrough", BoolRule(), false, false, false},
		{"duration", DurationRule(), "5m", 5 * time.Minute, false},
		{"duration invalid", DurationRule(), "later", nil, true},
		{"string", StringRule(), "x", "x", false},
		{"enum ok", EnumRule("a", "b"), "b", "b", false},
		{"enum bad", EnumRule("a", "b"), "c", nil, true},
		{"each", EachRule(IntRule()), []string{"1", "2"}, []any{int64(1), int64(2)}, false},
		{"each bad element", EachRule(IntRule()), []string{"1", "x"}, nil, true},
		{"each not a list", EachRule(IntRule()), "1", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.Coerce(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Coerce() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("coerced value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSchemaMerged(t *testing.T) {
	global := Schema{"a": IntRule(), "b": IntRule()}
	local := Schema{"b": StringRule(), "c": BoolRule()}

	merged := global.merged(local)
	if len(merged) != 3 {
		t.Fatalf("merged size = %d, want 3", len(merged))
	}
	if v, _ := merged["b"].Coerce(5); v != "5" {
		t.Errorf("local rule should win for shared key, got %v", v)
	}
}

func TestOxfordJoin(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a and b"},
		{[]string{"a", "b", "c"}, "a, b, and c"},
		{[]string{"a", "b", "c", "d"}, "a, b, c, and d"},
	}
	for _, tt := range tests {
		if got := oxfordJoin(tt.in); got != tt.want {
			t.Errorf("oxfordJoin(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
