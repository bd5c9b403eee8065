package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_max_percent", createSetMaxPercent)
	registry.Register("set_min_percent", createSetMinPercent)
	registry.Register("set_auto_cap", createSetAutomaticCap)
	registry.Register("set_individual_cap", createSetIndividualCap)
	registry.Register("even_spread", func(map[string]string) (PlanTransform, error) { return &EvenSpread{}, nil })
	registry.Register("match_floor", func(map[string]string) (PlanTransform, error) { return &MatchFloor{}, nil })

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"; the colon may be
// omitted for transforms without parameters.
// Example: "set_max_percent:percent=30"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetMaxPercent(params map[string]string) (PlanTransform, error) {
	percent, err := decimalParam("set_max_percent", params, "percent")
	if err != nil {
		return nil, err
	}
	return &SetMaxPercent{Percent: percent}, nil
}

func createSetMinPercent(params map[string]string) (PlanTransform, error) {
	percent, err := decimalParam("set_min_percent", params, "percent")
	if err != nil {
		return nil, err
	}
	return &SetMinPercent{Percent: percent}, nil
}

func createSetAutomaticCap(params map[string]string) (PlanTransform, error) {
	enabled := true
	if s, ok := params["enabled"]; ok {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value: %w", err)
		}
		enabled = v
	}
	return &SetAutomaticCap{Enabled: enabled}, nil
}

func createSetIndividualCap(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam("set_individual_cap", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetIndividualCap{Amount: amount}, nil
}
