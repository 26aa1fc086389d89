// Package telemetrytest provides a telemetry client that records tracked items.
package telemetrytest

import (
	"sync"

	"github.com/microsoft/ApplicationInsights-Go/appinsights"
)

// Recorder is a disabled Application Insights client whose Track calls are kept in memory.
type Recorder struct {
	appinsights.TelemetryClient

	mu    sync.Mutex
	items []appinsights.Telemetry
}

func NewRecorder() *Recorder {
	client := appinsights.NewTelemetryClient("")
	client.SetIsEnabled(false)
	return &Recorder{TelemetryClient: client}
}

func (r *Recorder) Track(item appinsights.Telemetry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
}

func (r *Recorder) Requests() []*appinsights.RequestTelemetry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []*appinsights.RequestTelemetry
	for _, item := range r.items {
		if request, ok := item.(*appinsights.RequestTelemetry); ok {
			requests = append(requests, request)
		}
	}
	return requests
}

func (r *Recorder) Events(name string) []*appinsights.EventTelemetry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []*appinsights.EventTelemetry
	for _, item := range r.items {
		if event, ok := item.(*appinsights.EventTelemetry); ok && event.Name == name {
			events = append(events, event)
		}
	}
	return events
}
