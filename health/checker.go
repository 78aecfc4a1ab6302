package health

import (
	"context"
	"time"
)

// Status represents the health status of the monitored service.
type Status int

const (
	// StatusHealthy indicates the service is running normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the service is reachable but not fully
	// operational, e.g. still indexing.
	StatusDegraded
	// StatusUnhealthy indicates the service is not reachable.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a status probe.
type Result struct {
	// Status is the health status.
	Status Status

	// Message provides additional context, typically the raw status
	// string the service reported.
	Message string

	// Duration is how long the probe took.
	Duration time.Duration

	// Timestamp is when the probe completed.
	Timestamp time.Time

	// Error is the probe error, if any.
	Error error
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{
		Status:    StatusHealthy,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Degraded creates a degraded result.
func Degraded(message string) Result {
	return Result{
		Status:    StatusDegraded,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string, err error) Result {
	return Result{
		Status:    StatusUnhealthy,
		Message:   message,
		Error:     err,
		Timestamp: time.Now(),
	}
}

// WithDuration sets the duration on a result.
func (r Result) WithDuration(d time.Duration) Result {
	r.Duration = d
	return r
}

// StatusFunc queries the monitored service for its free-form status
// string, e.g. "running" or "indexing". An error means the service's
// capability surface is not reachable.
type StatusFunc func(ctx context.Context) (string, error)
