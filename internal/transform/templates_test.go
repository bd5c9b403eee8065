package transform

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []PlanTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok = registry.Get(" TEST_TEMPLATE "); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()

	want := []string{"aggressive", "auto_cap", "conservative", "even_spread", "match_floor", "max_100", "max_25", "max_75"}
	names := registry.List()
	if len(names) != len(want) {
		t.Fatalf("Expected %d templates, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, names[i])
		}
	}

	for _, name := range names {
		template, _ := registry.Get(name)
		if template.Description == "" || len(template.Transforms) == 0 {
			t.Errorf("Template %s is incomplete", name)
		}
		if _, err := ApplyTemplate(basePlan(), template); err != nil {
			t.Errorf("Template %s failed on the base plan: %v", name, err)
		}
	}
}

func TestApplyTemplate(t *testing.T) {
	registry := CreateBuiltInTemplates()

	aggressive, _ := registry.Get("aggressive")
	result, err := ApplyTemplate(basePlan(), aggressive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.MaxContributionPercent.Equal(decimal.NewFromInt(100)) || !result.AutomaticallyCap {
		t.Errorf("Expected 100%% with automatic cap, got %s%% / %v", result.MaxContributionPercent, result.AutomaticallyCap)
	}

	conservative, _ := registry.Get("conservative")
	result, err = ApplyTemplate(basePlan(), conservative)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.MinContributionPercent.Equal(decimal.NewFromInt(38)) {
		t.Errorf("Expected the even percent to stay above the match limit, got %s", result.MinContributionPercent)
	}
}
