package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in plan templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PlanTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common contribution strategies
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "auto_cap",
		Description: "Land exactly on the individual cap",
		Transforms:  []PlanTransform{&SetAutomaticCap{Enabled: true}},
	})

	registry.Register(Template{
		Name:        "even_spread",
		Description: "Same percent every paycheck, no front-loading",
		Transforms:  []PlanTransform{&EvenSpread{}},
	})

	registry.Register(Template{
		Name:        "match_floor",
		Description: "Keep contributing at the employer match limit after front-loading",
		Transforms:  []PlanTransform{&MatchFloor{}},
	})

	for _, pct := range []int64{25, 75, 100} {
		registry.Register(Template{
			Name:        fmt.Sprintf("max_%d", pct),
			Description: fmt.Sprintf("Front-load at %d%% of pay", pct),
			Transforms:  []PlanTransform{&SetMaxPercent{Percent: decimal.NewFromInt(pct)}},
		})
	}

	registry.Register(Template{
		Name:        "aggressive",
		Description: "Front-load at 100% and land exactly on the cap",
		Transforms: []PlanTransform{
			&SetMaxPercent{Percent: decimal.NewFromInt(100)},
			&SetAutomaticCap{Enabled: true},
		},
	})

	registry.Register(Template{
		Name:        "conservative",
		Description: "Same percent every paycheck while never dropping below the match limit",
		Transforms: []PlanTransform{
			&EvenSpread{},
			&MatchFloor{},
		},
	})

	return registry
}

// ApplyTemplate applies every transform of template to base
func ApplyTemplate(base domain.ContributionParameters, template Template) (domain.ContributionParameters, error) {
	return ApplyTransforms(base, template.Transforms)
}
