package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/transform"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	Scheduler         *calculation.ContributionScheduler
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(scheduler *calculation.ContributionScheduler) *CompareEngine {
	if scheduler == nil {
		scheduler = calculation.NewContributionScheduler()
	}
	return &CompareEngine{
		Scheduler:         scheduler,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BasePlanName string   // Display name of the base plan
	Templates    []string // Built-in templates, one alternative each
	Transforms   []string // Transform specs ("name:key=value"), one alternative each
}

// Compare schedules the base plan and every requested alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base domain.ContributionParameters,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseName := options.BasePlanName
	if baseName == "" {
		baseName = "base"
	}

	baseResult, err := ce.evaluate(baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule base plan: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		alt, err := ce.evaluate(template.Name, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule plan %s: %w", templateName, err)
		}
		alt.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	for _, spec := range options.Transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, []transform.PlanTransform{t})
		if err != nil {
			return nil, err
		}

		alt, err := ce.evaluate(spec, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule plan %s: %w", spec, err)
		}
		alt.Description = t.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BasePlanName:       baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) evaluate(name string, p domain.ContributionParameters) (ComparisonResult, error) {
	schedule, err := ce.Scheduler.Generate(p)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, p, schedule), nil
}
