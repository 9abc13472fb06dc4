package event

import (
	"sort"
	"testing"
)

func TestTypeNames(t *testing.T) {
	names := TypeNames()

	if len(names) != 3 {
		t.Fatalf("TypeNames() returned %d names, want 3", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("TypeNames() not sorted: %v", names)
	}

	want := map[string]bool{"msg": true, "action": true, "unknown": true}
	for _, name := range names {
		if !want[name] {
			t.Errorf("TypeNames() contains unexpected %q", name)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input  string
		want   Type
		wantOK bool
	}{
		{"msg", Message, true},
		{"action", Action, true},
		{"unknown", Unknown, true},
		{"MSG", Message, true},
		{"  action  ", Action, true},
		{"message", "", false},
		{"", "", false},
		{"emote", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseType(tt.input)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseType(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
