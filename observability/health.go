package observability

import (
	"context"

	"github.com/kbukum/scopedi/component"
)

// ServiceHealth aggregates the health of the components hosting injectors.
type ServiceHealth struct {
	Service    string                 `json:"service"`
	Status     component.HealthStatus `json:"status"`
	Version    string                 `json:"version,omitempty"`
	Components []component.Health     `json:"components,omitempty"`
}

// NewServiceHealth creates a ServiceHealth with status healthy.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service: service,
		Status:  component.StatusHealthy,
		Version: version,
	}
}

// AddComponent adds a component result and degrades the overall status.
// Unhealthy is never downgraded to degraded.
func (sh *ServiceHealth) AddComponent(h component.Health) {
	sh.Components = append(sh.Components, h)

	switch h.Status {
	case component.StatusUnhealthy:
		sh.Status = component.StatusUnhealthy
	case component.StatusDegraded:
		if sh.Status != component.StatusUnhealthy {
			sh.Status = component.StatusDegraded
		}
	}
}

// CollectHealth builds a ServiceHealth from every component in reg.
func CollectHealth(ctx context.Context, reg *component.Registry, service, version string) *ServiceHealth {
	sh := NewServiceHealth(service, version)
	for _, h := range reg.HealthAll(ctx) {
		sh.AddComponent(h)
	}
	return sh
}
