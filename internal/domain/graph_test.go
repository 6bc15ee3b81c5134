package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraphSample(t *testing.T) {
	places, err := BuildGraph(SampleProblem())
	require.NoError(t, err)
	require.Len(t, places, 4)

	paris := places["Paris"]
	require.NotNil(t, paris)
	require.Len(t, paris.Paths, 3)

	// Insertion order follows the path definitions.
	assert.Equal(t, "Berlin", paris.Paths[0].Destination.Name)
	assert.Equal(t, "Venice", paris.Paths[1].Destination.Name)
	assert.Equal(t, "Atlantis", paris.Paths[2].Destination.Name)

	for name, p := range places {
		for _, path := range p.Paths {
			assert.Same(t, p, path.Origin, "origin of %s path", name)

			// Every connection has a symmetric reverse path.
			var reverse *Path
			for _, back := range path.Destination.Paths {
				if back.Destination == p {
					reverse = back
				}
			}
			require.NotNil(t, reverse, "missing reverse of %s", path)
			assert.Equal(t, path.Time, reverse.Time)
			assert.Equal(t, path.Utility, reverse.Utility)
		}
	}
}

func TestBuildGraphUnknownCity(t *testing.T) {
	def := ProblemDefinition{
		Places: map[string]PlaceSpec{"Paris": {Utility: 1, Cost: 1, Time: 1}},
		Paths:  []PathSpec{{City1: "Paris", City2: "Rome", Time: 1, Utility: 1}},
	}

	_, err := BuildGraph(def)
	var refErr *ReferenceError
	require.True(t, errors.As(err, &refErr), "want ReferenceError, got %v", err)
	assert.Equal(t, "Rome", refErr.City)
	assert.Equal(t, 0, refErr.Index)
}

func TestBuildGraphRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name string
		def  ProblemDefinition
	}{
		{
			name: "no places",
			def:  ProblemDefinition{},
		},
		{
			name: "negative cost",
			def: ProblemDefinition{
				Places: map[string]PlaceSpec{"A": {Utility: 1, Cost: -1, Time: 1}},
			},
		},
		{
			name: "nan time",
			def: ProblemDefinition{
				Places: map[string]PlaceSpec{"A": {Utility: 1, Cost: 1, Time: math.NaN()}},
			},
		},
		{
			name: "negative path time",
			def: ProblemDefinition{
				Places: map[string]PlaceSpec{"A": {}, "B": {}},
				Paths:  []PathSpec{{City1: "A", City2: "B", Time: -0.5}},
			},
		},
		{
			name: "self loop",
			def: ProblemDefinition{
				Places: map[string]PlaceSpec{"A": {}},
				Paths:  []PathSpec{{City1: "A", City2: "A", Time: 1}},
			},
		},
		{
			name: "duplicate connection",
			def: ProblemDefinition{
				Places: map[string]PlaceSpec{"A": {}, "B": {}},
				Paths: []PathSpec{
					{City1: "A", City2: "B", Time: 1},
					{City1: "B", City2: "A", Time: 2},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGraph(tt.def)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %v", err)
		})
	}
}
