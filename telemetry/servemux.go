package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/microsoft/ApplicationInsights-Go/appinsights"
)

// ServeMuxWithTrace records a request telemetry item for every handled route.
type ServeMuxWithTrace struct {
	*http.ServeMux
	client appinsights.TelemetryClient
	clock  clock.Clock
}

func NewServeMuxWithTrace(client appinsights.TelemetryClient) *ServeMuxWithTrace {
	return NewServeMuxWithTraceAndClock(client, clock.NewClock())
}

func NewServeMuxWithTraceAndClock(client appinsights.TelemetryClient, clk clock.Clock) *ServeMuxWithTrace {
	if client == nil {
		panic("telemetry client is required")
	}
	return &ServeMuxWithTrace{
		ServeMux: http.NewServeMux(),
		client:   client,
		clock:    clk,
	}
}

func (mux *ServeMuxWithTrace) Handle(pattern string, handler http.Handler) {
	mux.HandleFuncWithContext(pattern, func(w http.ResponseWriter, r *http.Request, _ *appinsights.RequestTelemetry) {
		handler.ServeHTTP(w, r)
	})
}

func (mux *ServeMuxWithTrace) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	mux.Handle(pattern, http.HandlerFunc(handler))
}

// HandleFuncWithContext gives the handler the request telemetry so it can attach properties.
func (mux *ServeMuxWithTrace) HandleFuncWithContext(pattern string, handler func(http.ResponseWriter, *http.Request, *appinsights.RequestTelemetry)) {
	mux.ServeMux.HandleFunc(pattern, mux.trace(pattern, handler))
}

func (mux *ServeMuxWithTrace) trace(name string, fn func(http.ResponseWriter, *http.Request, *appinsights.RequestTelemetry)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scheme := "https"
		if r.TLS == nil {
			scheme = "http"
		}
		telemetry := appinsights.NewRequestTelemetry(r.Method, fmt.Sprintf("%s://%s%s", scheme, r.Host, r.URL.Path), 0*time.Second, "200")
		startTime := mux.clock.Now()

		wrappedResponseWriter := NewResponseWriterWithStatusCode(w)
		fn(wrappedResponseWriter, r, telemetry)

		telemetry.Duration = mux.clock.Now().Sub(startTime)
		telemetry.ResponseCode = fmt.Sprintf("%d", wrappedResponseWriter.StatusCode())
		telemetry.Name = name

		mux.client.Track(telemetry)
	}
}
