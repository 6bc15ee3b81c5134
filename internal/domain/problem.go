package domain

// PlaceSpec is the definition of a single place in a problem.
type PlaceSpec struct {
	Utility float64 `json:"utility" yaml:"utility"`
	Cost    float64 `json:"cost" yaml:"cost"`
	Time    float64 `json:"time" yaml:"time"`
}

// PathSpec is an undirected connection between two places.
type PathSpec struct {
	City1   string  `json:"city1" yaml:"city1"`
	City2   string  `json:"city2" yaml:"city2"`
	Time    float64 `json:"time" yaml:"time"`
	Utility float64 `json:"utility" yaml:"utility"`
}

// Flat description of a routing problem, as loaded from a file or a datastore.
// Paths are ordered: their order decides the exploration order of the search.
type ProblemDefinition struct {
	Places map[string]PlaceSpec `json:"places" yaml:"places"`
	Paths  []PathSpec           `json:"paths" yaml:"paths"`
}

// SampleProblem returns the built-in four city problem.
func SampleProblem() ProblemDefinition {
	return ProblemDefinition{
		Places: map[string]PlaceSpec{
			"Paris":    {Utility: 4, Cost: 300, Time: 2},
			"Berlin":   {Utility: 10, Cost: 350, Time: 3},
			"Venice":   {Utility: 6, Cost: 200, Time: 1},
			"Atlantis": {Utility: 8, Cost: 150, Time: 2},
		},
		Paths: []PathSpec{
			{City1: "Paris", City2: "Berlin", Time: 0.5, Utility: 4},
			{City1: "Paris", City2: "Venice", Time: 1, Utility: 1},
			{City1: "Berlin", City2: "Venice", Time: 0.25, Utility: 2},
			{City1: "Paris", City2: "Atlantis", Time: 1, Utility: 3},
			{City1: "Berlin", City2: "Atlantis", Time: 2, Utility: 2},
			{City1: "Venice", City2: "Atlantis", Time: 0.75, Utility: 5},
		},
	}
}
