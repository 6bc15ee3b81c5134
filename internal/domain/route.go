package domain

// RouteEntry is a single step of a route history: exactly one of Place or Path is set.
type RouteEntry struct {
	Place *Place
	Path  *Path
}

// Utility reward contributed by this entry.
func (e RouteEntry) Utility() float64 {
	if e.Place != nil {
		return e.Place.Utility
	}
	if e.Path != nil {
		return e.Path.Utility
	}
	return 0
}

func (e RouteEntry) String() string {
	if e.Path != nil {
		return e.Path.String()
	}
	return e.Place.String()
}

// Represents a candidate itinerary produced during search, partial or terminal.
// Utility is the running sum of every entry in History; BudgetRemaining and
// TimeRemaining are the resources left after the last visited place.
//
// A Route owns its History. Routes are never shared between sibling branches
// of the search: Extend always copies.
type Route struct {
	History         []RouteEntry
	Utility         float64
	BudgetRemaining float64
	TimeRemaining   float64
}

// NewRoute returns an empty route with a freshly allocated history.
func NewRoute(budget, timeAvailable float64) *Route {
	return &Route{
		History:         make([]RouteEntry, 0, 8),
		BudgetRemaining: budget,
		TimeRemaining:   timeAvailable,
	}
}

// Visit appends a place to the route and records the resources left after it.
func (r *Route) Visit(p *Place, budgetRemaining, timeRemaining float64) {
	r.History = append(r.History, RouteEntry{Place: p})
	r.Utility += p.Utility
	r.BudgetRemaining = budgetRemaining
	r.TimeRemaining = timeRemaining
}

// Extend returns a copy of the route with the path appended.
// The receiver is left untouched.
func (r *Route) Extend(p *Path) *Route {
	history := make([]RouteEntry, len(r.History), len(r.History)+2)
	copy(history, r.History)
	history = append(history, RouteEntry{Path: p})

	return &Route{
		History:         history,
		Utility:         r.Utility + p.Utility,
		BudgetRemaining: r.BudgetRemaining,
		TimeRemaining:   r.TimeRemaining,
	}
}

// Visited reports whether the place already appears in the route history.
func (r *Route) Visited(p *Place) bool {
	for _, e := range r.History {
		if e.Place == p {
			return true
		}
	}
	return false
}

// Places returns the visited places in order.
func (r *Route) Places() []*Place {
	out := make([]*Place, 0, (len(r.History)+1)/2)
	for _, e := range r.History {
		if e.Place != nil {
			out = append(out, e.Place)
		}
	}
	return out
}

// Paths returns the traversed paths in order.
func (r *Route) Paths() []*Path {
	out := make([]*Path, 0, len(r.History)/2)
	for _, e := range r.History {
		if e.Path != nil {
			out = append(out, e.Path)
		}
	}
	return out
}
