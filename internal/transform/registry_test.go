package transform

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	want := []string{"even_spread", "match_floor", "set_auto_cap", "set_individual_cap", "set_max_percent", "set_min_percent"}

	if len(names) != len(want) {
		t.Fatalf("Expected %d transforms, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, names[i])
		}
	}
}

func TestParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		wantName string
		wantErr  bool
	}{
		{"set_max_percent:percent=30", "set_max_percent", false},
		{"set_min_percent: percent = 6 ", "set_min_percent", false},
		{"set_auto_cap:enabled=false", "set_auto_cap", false},
		{"set_auto_cap", "set_auto_cap", false},
		{"set_individual_cap:amount=23000", "set_individual_cap", false},
		{"even_spread", "even_spread", false},
		{"match_floor:", "match_floor", false},
		{"set_max_percent", "", true},
		{"set_max_percent:percent=abc", "", true},
		{"set_max_percent:percent", "", true},
		{"set_auto_cap:enabled=maybe", "", true},
		{"unknown_transform:x=1", "", true},
		{":percent=1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			transform, err := registry.ParseTransformSpec(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTransformSpec() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && transform.Name() != tt.wantName {
				t.Errorf("Expected %s, got %s", tt.wantName, transform.Name())
			}
		})
	}
}

func TestParseTransformSpec_Values(t *testing.T) {
	registry := NewTransformRegistry()

	transform, err := registry.ParseTransformSpec("set_max_percent:percent=12.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := transform.(*SetMaxPercent).Percent; !got.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("Expected 12.5, got %s", got)
	}

	transform, _ = registry.ParseTransformSpec("set_auto_cap:enabled=false")
	if transform.(*SetAutomaticCap).Enabled {
		t.Error("Expected automatic cap to be disabled")
	}
}
