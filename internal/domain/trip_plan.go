package domain

// A single place visited by a planned trip.
type TripStop struct {
	Place   string  `json:"place"`
	Utility float64 `json:"utility"`
	Cost    float64 `json:"cost"`
	Time    float64 `json:"time"`
}

// A single transit between two consecutive stops.
type TripLeg struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Time    float64 `json:"time"`
	Utility float64 `json:"utility"`
}

// Represents the best itinerary found for a problem.
// A TripPlan is presentation-neutral planning data detached from the graph,
// so it can be cached and serialized.
type TripPlan struct {
	ProblemID       string     `json:"problem_id"`
	Start           string     `json:"start"`
	Stops           []TripStop `json:"stops"`
	Legs            []TripLeg  `json:"legs"`
	Utility         float64    `json:"utility"`
	BudgetRemaining float64    `json:"budget_remaining"`
	TimeRemaining   float64    `json:"time_remaining"`
	TracedRoutes    int        `json:"traced_routes,omitempty"`
}

// Itinerary returns the stop names in visiting order.
func (p *TripPlan) Itinerary() []string {
	out := make([]string, 0, len(p.Stops))
	for _, s := range p.Stops {
		out = append(out, s.Place)
	}
	return out
}
