package api

// HealthResponse is returned by /health
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse is returned by /readiness once the vault catalog is usable
type ReadinessResponse struct {
	Status string `json:"status"`
}
