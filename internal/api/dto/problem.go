package dto

import "trip-planner-service/internal/domain"

type ListProblemsResponse struct {
	Problems []string `json:"problems"`
}

type ProblemResponse struct {
	ID      string                   `json:"id"`
	Problem domain.ProblemDefinition `json:"problem"`
}
