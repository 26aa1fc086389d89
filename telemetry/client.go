// Package telemetry wires Application Insights into the HTTP server.
package telemetry

import (
	"fmt"
	"log"
	"time"

	"github.com/microsoft/ApplicationInsights-Go/appinsights"
)

const (
	EVENT_BUTTON_ACTIVATED = "button-activated"
	EVENT_IMAGE_CACHE      = "cache-hit"
)

// NewClient creates a telemetry client for the given role. Without an
// instrumentation key the client is returned disabled so Track calls are no-ops.
func NewClient(instrumentationKey string, role string) appinsights.TelemetryClient {
	telemetryConfig := appinsights.NewTelemetryConfiguration(instrumentationKey)
	// Configure how many items can be sent in one call to the data collector:
	telemetryConfig.MaxBatchSize = 8192
	// Configure the maximum delay before sending queued telemetry:
	telemetryConfig.MaxBatchInterval = 2 * time.Second

	client := appinsights.NewTelemetryClientFromConfig(telemetryConfig)
	client.Context().Tags.Cloud().SetRole(role)
	if instrumentationKey == "" {
		log.Println("Application Insights instrumentation key not set, telemetry disabled")
		client.SetIsEnabled(false)
	}
	return client
}

// Close flushes pending telemetry, waiting at most timeout.
func Close(client appinsights.TelemetryClient, timeout time.Duration) {
	select {
	case <-client.Channel().Close(timeout):
	case <-time.After(timeout):
		log.Println("timed out flushing telemetry")
	}
}

func TrackButtonActivated(client appinsights.TelemetryClient, source string, isNightMode bool) {
	e := appinsights.NewEventTelemetry(EVENT_BUTTON_ACTIVATED)
	e.Properties["source"] = source
	e.Properties["is-night-mode"] = fmt.Sprintf("%t", isNightMode)
	client.Track(e)
}

func TrackImageCache(client appinsights.TelemetryClient, cacheHit bool, reason string) {
	e := appinsights.NewEventTelemetry(EVENT_IMAGE_CACHE)
	e.Properties["cache-hit"] = fmt.Sprintf("%t", cacheHit)
	e.Properties["reason"] = reason
	client.Track(e)
}
