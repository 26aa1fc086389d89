package main

import (
	"crypto/sha1"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/microsoft/ApplicationInsights-Go/appinsights"
	"github.com/stuartleeks/home-dash/weather-screen/config"
	"github.com/stuartleeks/home-dash/weather-screen/data"
	"github.com/stuartleeks/home-dash/weather-screen/screen"
	"github.com/stuartleeks/home-dash/weather-screen/telemetry"
	"golang.org/x/time/rate"
)

const (
	ACTION_TOGGLE_DAY_TIME = "toggle-day-time"

	ACTIVATION_SOURCE_BUTTON = "button"
	ACTIVATION_SOURCE_ACTION = "action-id"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type ApiRouter struct {
	appInsightsClient appinsights.TelemetryClient
	rootScreen        *screen.RootScreen
	renderer          *screenRenderer
	imageCache        *data.Cache[string, cachedImage]
	imageLimiter      *rate.Limiter
}

type ApiRouterOptions struct {
	RenderRPS   float64
	RenderBurst int
}

func NewApiRouter(appInsightsClient appinsights.TelemetryClient, rootScreen *screen.RootScreen, renderer *screenRenderer, options ApiRouterOptions) *ApiRouter {
	if appInsightsClient == nil {
		panic("appInsightsClient is required")
	}
	if rootScreen == nil || renderer == nil {
		panic("rootScreen and renderer are required")
	}
	if options.RenderRPS <= 0 {
		options.RenderRPS = config.GetImageRenderRPS()
	}
	if options.RenderBurst <= 0 {
		options.RenderBurst = config.GetImageRenderBurst()
	}
	return &ApiRouter{
		appInsightsClient: appInsightsClient,
		rootScreen:        rootScreen,
		renderer:          renderer,
		imageCache:        data.NewCache[string, cachedImage](10 * time.Minute),
		imageLimiter:      rate.NewLimiter(rate.Limit(options.RenderRPS), options.RenderBurst),
	}
}

func (api *ApiRouter) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s := api.rootScreen.Render()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := indexTemplate.Execute(w, struct {
		Screen   screen.Screen
		ImageURL string
	}{
		Screen: s,
		// the query only busts browser caches, the image itself is keyed by ETag
		ImageURL: fmt.Sprintf("/screen-image?night=%t", s.State.IsNightMode),
	})
	if err != nil {
		log.Printf("failed to render index: %v", err)
	}
}

func (api *ApiRouter) ScreenGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.rootScreen.Render())
}

func (api *ApiRouter) ForecastGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.rootScreen.Forecast())
}

func (api *ApiRouter) StateGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, api.rootScreen.State())
}

// ButtonActivate handles a tap on the day/night button. Browser form posts are
// redirected back to the page, API clients get the new state.
func (api *ApiRouter) ButtonActivate(w http.ResponseWriter, r *http.Request, rt *appinsights.RequestTelemetry) {
	state := api.activate(ACTIVATION_SOURCE_BUTTON)
	rt.Properties["is-night-mode"] = fmt.Sprintf("%t", state.IsNightMode)

	if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, state)
}

func (api *ApiRouter) activate(source string) screen.AppState {
	state := api.rootScreen.Render().Button.Activate()
	log.Printf("Button activated (%s), night mode: %t", source, state.IsNightMode)
	telemetry.TrackButtonActivated(api.appInsightsClient, source, state.IsNightMode)
	return state
}

func (api *ApiRouter) ScreenImageGet(w http.ResponseWriter, r *http.Request, rt *appinsights.RequestTelemetry) {
	log.Println("ScreenImageGet starting...")
	defer log.Println("ScreenImageGet done.")

	format := r.URL.Query().Get("format")
	if format != "" && format != IMAGE_FORMAT_PNG && format != IMAGE_FORMAT_JPEG && format != "jpg" {
		http.Error(w, fmt.Sprintf("unsupported image format %q", format), http.StatusBadRequest)
		return
	}

	actionID := r.Header.Get("action-id")
	if actionID != "" {
		log.Printf("Action id: %s", actionID)
		rt.Properties["action-id"] = actionID
		if actionID != ACTION_TOGGLE_DAY_TIME {
			http.Error(w, fmt.Sprintf("unknown action %q", actionID), http.StatusBadRequest)
			return
		}
	}

	if !api.imageLimiter.Allow() {
		rt.Properties["rate-limited"] = "true"
		http.Error(w, "too many image requests", http.StatusTooManyRequests)
		return
	}

	if actionID != "" {
		api.activate(ACTIVATION_SOURCE_ACTION)
	}

	ifNoneMatch := r.Header.Get("If-None-Match")
	if ifNoneMatch != "" {
		log.Printf("If-None-Match: %s", ifNoneMatch)
		rt.Properties["If-None-Match"] = ifNoneMatch
	}

	s := api.rootScreen.Render()
	current := cachedImage{Screen: s, Format: normalizeFormat(format)}
	w.Header().Set("night-mode", fmt.Sprintf("%t", s.State.IsNightMode))
	w.Header().Set("actions", fmt.Sprintf("[%q]", ACTION_TOGGLE_DAY_TIME))

	// The cache is only consulted for plain polls: an action always changes the screen
	if ifNoneMatch != "" && actionID == "" {
		if cached := api.imageCache.Get(ifNoneMatch); cached != nil {
			reason := checkForSignificantChange(cached, &current)
			if reason == "" {
				telemetry.TrackImageCache(api.appInsightsClient, true, "no-significant-change")
				w.Header().Set("Etag", ifNoneMatch)
				w.WriteHeader(http.StatusNotModified)
				return
			}
			log.Printf("Significant change in screen: %s", reason)
			telemetry.TrackImageCache(api.appInsightsClient, false, reason)
			rt.Properties["cache-invalid"] = reason
		} else {
			telemetry.TrackImageCache(api.appInsightsClient, false, "no cached data")
		}
	}

	dc, err := api.renderer.drawScreenImage(s)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// The hash is needed for the Etag header before the body is written
	imageBytes, contentType, err := encodeImage(dc, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	hash := sha1.New()
	hash.Write(imageBytes)
	hashValue := fmt.Sprintf("%x", hash.Sum(nil))

	api.imageCache.Set(hashValue, &current)
	log.Printf("Etag: %s", hashValue)
	rt.Properties["Etag"] = hashValue

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Etag", hashValue)
	_, _ = w.Write(imageBytes)
}

// cachedImage is what an Etag handed out to a client was rendered from
type cachedImage struct {
	Screen screen.Screen
	Format string
}

func normalizeFormat(format string) string {
	switch format {
	case IMAGE_FORMAT_JPEG, "jpg":
		return IMAGE_FORMAT_JPEG
	default:
		return IMAGE_FORMAT_PNG
	}
}

// checkForSignificantChange returns why the cached image can no longer be
// served, or "" when it still matches.
func checkForSignificantChange(oldImage *cachedImage, newImage *cachedImage) string {
	if oldImage == nil {
		return "old image is nil"
	}
	if oldImage.Format != newImage.Format {
		return "image format has changed"
	}
	if oldImage.Screen.State != newImage.Screen.State {
		return "night mode has changed"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
