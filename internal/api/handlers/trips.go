package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

type TripHandler struct {
	Repo           ports.ProblemRepository
	Cache          ports.TripCache
	DefaultWorkers int
}

// Plan runs the route search for a stored or inline problem.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TripPlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	start := strings.TrimSpace(req.Start)
	if start == "" {
		writeError(w, r, http.StatusBadRequest, "start is required")
		return
	}

	if req.Problem == nil && strings.TrimSpace(req.ProblemID) == "" {
		writeError(w, r, http.StatusBadRequest, "problem_id or problem is required")
		return
	}

	if req.Budget == nil {
		writeError(w, r, http.StatusBadRequest, "budget is required")
		return
	}
	if req.DaysAvailable == nil {
		writeError(w, r, http.StatusBadRequest, "days_available is required")
		return
	}
	if *req.Budget < 0 {
		writeError(w, r, http.StatusBadRequest, "budget must be non-negative")
		return
	}
	if *req.DaysAvailable < 0 {
		writeError(w, r, http.StatusBadRequest, "days_available must be non-negative")
		return
	}
	if req.TransitCostPerDay < 0 {
		writeError(w, r, http.StatusBadRequest, "transit_cost_per_day must be non-negative")
		return
	}

	workers := req.Workers
	if workers == 0 {
		workers = h.DefaultWorkers
	}
	if workers < 1 || workers > services.MaxWorkers {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("workers must be between 1 and %d", services.MaxWorkers))
		return
	}

	svcReq := services.PlanTripRequest{
		ProblemID: strings.TrimSpace(req.ProblemID),
		Problem:   req.Problem,
		Start:     start,
		Params: services.SearchParams{
			Budget:            *req.Budget,
			TimeAvailable:     *req.DaysAvailable,
			TransitCostPerDay: req.TransitCostPerDay,
		},
		Workers: workers,
		Trace:   req.Trace,
	}

	plan, err := services.PlanTrip(r.Context(), svcReq, h.Repo, h.Cache)
	if err != nil {
		writeServiceError(w, r, "plan trip", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toTripPlanResponse(plan))
}

func toTripPlanResponse(p *domain.TripPlan) dto.TripPlanResponse {
	res := dto.TripPlanResponse{
		ProblemID:       p.ProblemID,
		Start:           p.Start,
		Itinerary:       p.Itinerary(),
		Stops:           make([]dto.TripStopResponse, 0, len(p.Stops)),
		Legs:            make([]dto.TripLegResponse, 0, len(p.Legs)),
		Utility:         p.Utility,
		BudgetRemaining: p.BudgetRemaining,
		TimeRemaining:   p.TimeRemaining,
		TracedRoutes:    p.TracedRoutes,
	}

	for _, s := range p.Stops {
		res.Stops = append(res.Stops, dto.TripStopResponse{
			Place:   s.Place,
			Utility: s.Utility,
			Cost:    s.Cost,
			Time:    s.Time,
		})
	}
	for _, l := range p.Legs {
		res.Legs = append(res.Legs, dto.TripLegResponse{
			From:    l.From,
			To:      l.To,
			Time:    l.Time,
			Utility: l.Utility,
		})
	}

	return res
}
