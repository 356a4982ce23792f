package component

import "context"

// HealthStatus is the coarse state a component reports.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is a point-in-time report for one component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// OK reports whether the component is fully healthy.
func (h Health) OK() bool { return h.Status == StatusHealthy }

// String renders the report as name=status or name=status(message).
func (h Health) String() string {
	s := h.Name + "=" + string(h.Status)
	if h.Message != "" {
		s += "(" + h.Message + ")"
	}
	return s
}

// Component is anything the registry starts in order and stops in reverse.
// Injectors implement it so a tree of scopes can be owned by one registry.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	// Stop releases everything the component owns. Calling it twice must be safe.
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}
