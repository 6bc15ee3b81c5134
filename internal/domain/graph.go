package domain

import (
	"fmt"
	"math"
	"strings"
)

// BuildGraph turns a flat problem definition into linked places.
//
// Each path definition contributes two Paths, one per direction, appended to
// the respective origin's Paths in definition order. Values are validated
// eagerly so the search never runs on a graph that could break its invariants.
func BuildGraph(def ProblemDefinition) (map[string]*Place, error) {
	if len(def.Places) == 0 {
		return nil, &ConfigurationError{Field: "places", Reason: "at least one place is required"}
	}

	places := make(map[string]*Place, len(def.Places))
	for name, spec := range def.Places {
		if strings.TrimSpace(name) == "" {
			return nil, &ConfigurationError{Field: "place name", Reason: "must be non-empty"}
		}
		if err := checkNonNegative(fmt.Sprintf("place %q utility", name), spec.Utility); err != nil {
			return nil, err
		}
		if err := checkNonNegative(fmt.Sprintf("place %q cost", name), spec.Cost); err != nil {
			return nil, err
		}
		if err := checkNonNegative(fmt.Sprintf("place %q time", name), spec.Time); err != nil {
			return nil, err
		}

		places[name] = &Place{
			Name:    name,
			Utility: spec.Utility,
			Cost:    spec.Cost,
			Time:    spec.Time,
		}
	}

	seen := make(map[[2]string]struct{}, len(def.Paths))
	for i, spec := range def.Paths {
		a, ok := places[spec.City1]
		if !ok {
			return nil, &ReferenceError{Index: i, City: spec.City1}
		}
		b, ok := places[spec.City2]
		if !ok {
			return nil, &ReferenceError{Index: i, City: spec.City2}
		}

		if a == b {
			return nil, &ConfigurationError{
				Field:  fmt.Sprintf("path #%d", i+1),
				Reason: fmt.Sprintf("connects %q to itself", a.Name),
			}
		}

		key := [2]string{a.Name, b.Name}
		if b.Name < a.Name {
			key = [2]string{b.Name, a.Name}
		}
		if _, dup := seen[key]; dup {
			return nil, &ConfigurationError{
				Field:  fmt.Sprintf("path #%d", i+1),
				Reason: fmt.Sprintf("duplicate connection between %q and %q", a.Name, b.Name),
			}
		}
		seen[key] = struct{}{}

		if err := checkNonNegative(fmt.Sprintf("path #%d time", i+1), spec.Time); err != nil {
			return nil, err
		}
		if err := checkNonNegative(fmt.Sprintf("path #%d utility", i+1), spec.Utility); err != nil {
			return nil, err
		}

		a.Paths = append(a.Paths, &Path{Origin: a, Destination: b, Time: spec.Time, Utility: spec.Utility})
		b.Paths = append(b.Paths, &Path{Origin: b, Destination: a, Time: spec.Time, Utility: spec.Utility})
	}

	return places, nil
}

func checkNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ConfigurationError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("must be non-negative, got %v", v)}
	}
	return nil
}
