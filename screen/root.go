// Package screen holds the weather screen state and derives its component tree.
package screen

import (
	"sync"

	"github.com/stuartleeks/home-dash/weather-screen/data"
)

// AppState is the only mutable state of the screen.
type AppState struct {
	IsNightMode bool `json:"is_night_mode"`
}

func (s AppState) Toggled() AppState {
	return AppState{IsNightMode: !s.IsNightMode}
}

// Screen is an immutable snapshot of the rendered component tree.
type Screen struct {
	State          AppState           `json:"state"`
	Background     BackgroundView     `json:"background"`
	CurrentWeather CurrentWeatherView `json:"current_weather"`
	WeeklyWeather  WeeklyWeatherView  `json:"weekly_weather"`
	Button         WeatherButton      `json:"button"`
}

// Texts returns every visible string on the screen in layout order.
func (s Screen) Texts() []string {
	texts := s.CurrentWeather.Texts()
	for day := range s.WeeklyWeather.Days() {
		texts = append(texts, day.Texts()...)
	}
	return append(texts, s.Button.Label())
}

type RootScreen struct {
	definition data.ScreenDefinition

	mu    sync.Mutex
	state AppState
}

// NewRootScreen starts in day mode. The definition is copied.
func NewRootScreen(definition data.ScreenDefinition) *RootScreen {
	return &RootScreen{
		definition: definition.Clone(),
	}
}

func (r *RootScreen) State() AppState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *RootScreen) Forecast() []data.ForecastEntry {
	return r.definition.Clone().Forecast
}

// Render derives the component tree from the current state.
func (r *RootScreen) Render() Screen {
	state := r.State()
	current := r.definition.Current

	return Screen{
		State:          state,
		Background:     NewBackgroundView(state.IsNightMode),
		CurrentWeather: NewCurrentWeatherView(current.LocationName, current.IconID(state.IsNightMode), current.TemperatureF),
		WeeklyWeather:  NewWeeklyWeatherView(r.definition.Forecast),
		Button:         NewWeatherButton(r.definition.ButtonTitle, r.toggle),
	}
}

// toggle is the button's activation handler and the only state mutation.
func (r *RootScreen) toggle() AppState {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = r.state.Toggled()
	return r.state
}
