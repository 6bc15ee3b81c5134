package domain

// A visitable node in the travel graph.
// Paths holds one outgoing Path per adjacent place, in the order the
// connections were declared, each with Origin == this place.
type Place struct {
	Name    string
	Utility float64
	Cost    float64
	Time    float64
	Paths   []*Path
}

// One direction of a bidirectional connection between two places.
// Destination is a non-owning reference into the shared place collection.
type Path struct {
	Origin      *Place
	Destination *Place
	Time        float64
	Utility     float64
}

func (p *Place) String() string {
	if p == nil {
		return "<nil place>"
	}
	return p.Name
}

func (p *Path) String() string {
	if p == nil {
		return "<nil path>"
	}
	return p.Origin.String() + " -> " + p.Destination.String()
}
