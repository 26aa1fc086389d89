package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/microsoft/ApplicationInsights-Go/appinsights"
	"github.com/stuartleeks/home-dash/weather-screen/config"
	"github.com/stuartleeks/home-dash/weather-screen/data"
	"github.com/stuartleeks/home-dash/weather-screen/screen"
	"github.com/stuartleeks/home-dash/weather-screen/telemetry"
)

func main() {
	fmt.Printf("Server starting...[%d]\n", os.Getpid())

	_, err := os.Stat(".env")
	if err == nil {
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	log.Printf("Screen definition path: %q", config.GetScreenDefinitionPath())
	log.Printf("Icons path: %s", config.GetIconsPath())

	definition, err := data.LoadScreenDefinition(config.GetScreenDefinitionPath())
	if err != nil {
		log.Fatalf("Error loading screen definition: %v", err)
	}
	renderer, err := newScreenRenderer(config.GetIconsPath(), config.GetFontPath())
	if err != nil {
		log.Fatalf("Error loading fonts: %v", err)
	}

	appInsightsClient := telemetry.NewClient(config.GetApplicationInsightsInstrumentationKey(), "weather-screen")
	defer telemetry.Close(appInsightsClient, 5*time.Second)

	api := NewApiRouter(appInsightsClient, screen.NewRootScreen(definition), renderer, ApiRouterOptions{
		RenderRPS:   config.GetImageRenderRPS(),
		RenderBurst: config.GetImageRenderBurst(),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := serveAPI(ctx, config.GetListenAddress(), api, appInsightsClient); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("Server stopped!")
}

func serveAPI(ctx context.Context, address string, api *ApiRouter, appInsightsClient appinsights.TelemetryClient) error {
	log.Printf("listening on %s", address)
	l, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	mux := telemetry.NewServeMuxWithTrace(appInsightsClient)
	registerHandlers(mux, api)
	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	return server.Serve(l)
}

func registerHandlers(mux *telemetry.ServeMuxWithTrace, api *ApiRouter) {
	mux.HandleFunc("GET /", api.Index)
	mux.HandleFunc("GET /screen", api.ScreenGet)
	mux.HandleFunc("GET /forecast", api.ForecastGet)
	mux.HandleFunc("GET /state", api.StateGet)
	mux.HandleFuncWithContext("POST /button", api.ButtonActivate)
	mux.HandleFuncWithContext("GET /screen-image", api.ScreenImageGet)
}
