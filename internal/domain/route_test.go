package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteExtendCopiesHistory(t *testing.T) {
	places, err := BuildGraph(SampleProblem())
	require.NoError(t, err)
	paris := places["Paris"]

	parent := NewRoute(700, 14)
	parent.Visit(paris, 700, 14)

	a := parent.Extend(paris.Paths[0])
	b := parent.Extend(paris.Paths[1])

	a.Visit(paris.Paths[0].Destination, 300, 10.5)

	assert.Len(t, parent.History, 1, "parent must not observe child extensions")
	assert.Len(t, b.History, 2, "siblings must not observe each other")
	assert.Len(t, a.History, 3)

	assert.Equal(t, 4.0, parent.Utility)
	assert.Equal(t, 18.0, a.Utility)
	assert.Equal(t, 5.0, b.Utility)
}

func TestRouteFreshHistoryPerInstance(t *testing.T) {
	r1 := NewRoute(10, 10)
	r2 := NewRoute(10, 10)
	r1.Visit(&Place{Name: "A", Utility: 1}, 10, 10)

	assert.Empty(t, r2.History)
}

func TestRouteAccessors(t *testing.T) {
	places, err := BuildGraph(SampleProblem())
	require.NoError(t, err)
	paris := places["Paris"]
	toBerlin := paris.Paths[0]

	r := NewRoute(700, 14)
	r.Visit(paris, 700, 14)
	r = r.Extend(toBerlin)
	r.Visit(toBerlin.Destination, 300, 10.5)

	assert.True(t, r.Visited(paris))
	assert.True(t, r.Visited(places["Berlin"]))
	assert.False(t, r.Visited(places["Venice"]))

	require.Len(t, r.Places(), 2)
	require.Len(t, r.Paths(), 1)
	assert.Equal(t, "Paris -> Berlin", r.Paths()[0].String())
}
