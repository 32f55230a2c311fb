package services

import "context"

// HealthResult reports service liveness
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HealthService implements the health check
type HealthService struct {
	serviceName string
	dbCheck     func() error
}

// NewHealthService creates a new health service
func NewHealthService(serviceName string, dbCheck func() error) *HealthService {
	return &HealthService{serviceName: serviceName, dbCheck: dbCheck}
}

// Check reports whether the service and its database are reachable
func (s *HealthService) Check(ctx context.Context) *HealthResult {
	status := "healthy"
	if s.dbCheck != nil {
		if err := s.dbCheck(); err != nil {
			status = "degraded"
		}
	}
	return &HealthResult{
		Status:  status,
		Service: s.serviceName,
	}
}
