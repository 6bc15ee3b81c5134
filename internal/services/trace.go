package services

import (
	"sync"
	"trip-planner-service/internal/domain"
)

// Tracer observes every partial route recorded by the search.
// Routes passed to Record must be treated as read-only.
type Tracer interface {
	Record(route *domain.Route)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(route *domain.Route)

func (f TracerFunc) Record(route *domain.Route) { f(route) }

// TraceCollector keeps every recorded route in order. Safe for concurrent use.
type TraceCollector struct {
	mu     sync.Mutex
	routes []*domain.Route
}

func NewTraceCollector() *TraceCollector {
	return &TraceCollector{}
}

func (c *TraceCollector) Record(route *domain.Route) {
	c.mu.Lock()
	c.routes = append(c.routes, route)
	c.mu.Unlock()
}

// Routes returns a copy of the recorded routes.
func (c *TraceCollector) Routes() []*domain.Route {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*domain.Route, len(c.routes))
	copy(out, c.routes)
	return out
}

func (c *TraceCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.routes)
}
