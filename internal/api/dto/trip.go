package dto

import "trip-planner-service/internal/domain"

type TripPlanRequest struct {
	ProblemID         string                    `json:"problem_id"`
	Problem           *domain.ProblemDefinition `json:"problem"`
	Start             string                    `json:"start"`
	Budget            *float64                  `json:"budget"`
	DaysAvailable     *float64                  `json:"days_available"`
	TransitCostPerDay float64                   `json:"transit_cost_per_day"`
	Workers           int                       `json:"workers"`
	Trace             bool                      `json:"trace"`
}

type TripStopResponse struct {
	Place   string  `json:"place"`
	Utility float64 `json:"utility"`
	Cost    float64 `json:"cost"`
	Time    float64 `json:"time"`
}

type TripLegResponse struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Time    float64 `json:"time"`
	Utility float64 `json:"utility"`
}

type TripPlanResponse struct {
	ProblemID       string             `json:"problem_id,omitempty"`
	Start           string             `json:"start"`
	Itinerary       []string           `json:"itinerary"`
	Stops           []TripStopResponse `json:"stops"`
	Legs            []TripLegResponse  `json:"legs"`
	Utility         float64            `json:"utility"`
	BudgetRemaining float64            `json:"budget_remaining"`
	TimeRemaining   float64            `json:"time_remaining"`
	TracedRoutes    int                `json:"traced_routes,omitempty"`
}
