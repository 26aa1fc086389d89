package screen

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuartleeks/home-dash/weather-screen/data"
)

func TestBackgroundViewColors(t *testing.T) {
	tests := []struct {
		isNightMode bool
		expected    [2]Color
	}{
		{false, [2]Color{ColorBlue, ColorLightBlue}},
		{true, [2]Color{ColorBlack, ColorGray}},
	}
	for _, tt := range tests {
		bg := NewBackgroundView(tt.isNightMode)
		assert.Equal(t, tt.expected, bg.Colors)
		assert.Equal(t, TopLeading, bg.StartPoint)
		assert.Equal(t, BottomTrailing, bg.EndPoint)
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := ColorBlue.RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0x7A7A), g)
	assert.Equal(t, uint32(0xFFFF), b)
	assert.Equal(t, uint32(0xFFFF), a)
	assert.Equal(t, "#007AFF", ColorBlue.Hex())
}

func TestInitialStateIsDay(t *testing.T) {
	root := NewRootScreen(data.DefaultScreenDefinition())
	assert.False(t, root.State().IsNightMode)
	assert.Equal(t, data.ICON_CLOUD_SUN, root.Render().CurrentWeather.IconID)
}

func TestButtonActivationToggles(t *testing.T) {
	for taps := 0; taps <= 7; taps++ {
		root := NewRootScreen(data.DefaultScreenDefinition())
		for i := 0; i < taps; i++ {
			root.Render().Button.Activate()
		}
		assert.Equal(t, taps%2 == 1, root.State().IsNightMode, "after %d taps", taps)
	}
}

func TestToggleIsSelfInverse(t *testing.T) {
	for _, s := range []AppState{{IsNightMode: false}, {IsNightMode: true}} {
		assert.Equal(t, s, s.Toggled().Toggled())
	}
}

func TestNightModeChangesBackgroundAndIcon(t *testing.T) {
	root := NewRootScreen(data.DefaultScreenDefinition())
	root.Render().Button.Activate()

	s := root.Render()
	assert.True(t, s.State.IsNightMode)
	assert.Equal(t, [2]Color{ColorBlack, ColorGray}, s.Background.Colors)
	assert.Equal(t, data.ICON_MOON_STARS, s.CurrentWeather.IconID)
}

func TestWeeklyWeatherIndependentOfNightMode(t *testing.T) {
	root := NewRootScreen(data.DefaultScreenDefinition())
	for i := 0; i < 2; i++ {
		s := root.Render()
		var days []string
		var temps []int
		for day := range s.WeeklyWeather.Days() {
			days = append(days, day.DayLabel)
			temps = append(temps, day.TemperatureF)
			assert.Equal(t, float64(40), day.Metrics.IconSize)
		}
		assert.Equal(t, 5, s.WeeklyWeather.Len())
		assert.Equal(t, []string{"TUE", "WED", "THU", "FRI", "SAT"}, days)
		assert.Equal(t, []int{60, 72, 30, 89, 40}, temps)

		s.Button.Activate()
	}
}

func TestWeeklyWeatherDaysIsRestartable(t *testing.T) {
	view := NewWeeklyWeatherView(data.DefaultScreenDefinition().Forecast)

	var first, second []WeatherDayView
	for day := range view.Days() {
		first = append(first, day)
	}
	for day := range view.Days() {
		second = append(second, day)
		if len(second) == 2 {
			break
		}
	}
	assert.Len(t, first, 5)
	assert.Equal(t, first[:2], second)
}

func TestCurrentWeatherViewTexts(t *testing.T) {
	v := NewCurrentWeatherView("Cupertino, CA", "cloud.sun.fill", 76)
	text := strings.Join(v.Texts(), "\n")

	assert.Contains(t, text, "Cupertino, CA")
	assert.Contains(t, text, "76°")
	assert.Equal(t, float64(180), v.Metrics.IconSize)
}

func TestButtonLabelUsesTitle(t *testing.T) {
	b := NewWeatherButton("Switch", nil)
	assert.Equal(t, "Switch", b.Label())
	b.Activate()

	root := NewRootScreen(data.DefaultScreenDefinition())
	assert.Equal(t, data.DefaultButtonTitle, root.Render().Button.Label())
}

func TestRenderIsIdempotent(t *testing.T) {
	root := NewRootScreen(data.DefaultScreenDefinition())

	first, err := json.Marshal(root.Render())
	require.NoError(t, err)
	second, err := json.Marshal(root.Render())
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, root.Render().Texts(), root.Render().Texts())
}

func TestRootScreenCopiesDefinition(t *testing.T) {
	def := data.DefaultScreenDefinition()
	root := NewRootScreen(def)
	def.Forecast[0].DayLabel = "XXX"

	for day := range root.Render().WeeklyWeather.Days() {
		assert.Equal(t, "TUE", day.DayLabel)
		break
	}

	forecast := root.Forecast()
	forecast[1].TemperatureF = 0
	assert.Equal(t, 72, root.Forecast()[1].TemperatureF)
}

func TestScreenJSON(t *testing.T) {
	b, err := json.Marshal(NewRootScreen(data.DefaultScreenDefinition()).Render())
	require.NoError(t, err)

	var decoded struct {
		State struct {
			IsNightMode bool `json:"is_night_mode"`
		} `json:"state"`
		Background struct {
			Colors []struct {
				Name string `json:"name"`
				Hex  string `json:"hex"`
			} `json:"colors"`
		} `json:"background"`
		WeeklyWeather struct {
			Days []struct {
				DayLabel string `json:"day_label"`
			} `json:"days"`
		} `json:"weekly_weather"`
		Button struct {
			Label string `json:"label"`
		} `json:"button"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.False(t, decoded.State.IsNightMode)
	require.Len(t, decoded.Background.Colors, 2)
	assert.Equal(t, "blue", decoded.Background.Colors[0].Name)
	assert.Equal(t, "lightBlue", decoded.Background.Colors[1].Name)
	assert.Len(t, decoded.WeeklyWeather.Days, 5)
	assert.Equal(t, "Change Day Time", decoded.Button.Label)
}

func TestConcurrentActivations(t *testing.T) {
	root := NewRootScreen(data.DefaultScreenDefinition())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root.Render().Button.Activate()
		}()
	}
	wg.Wait()

	assert.False(t, root.State().IsNightMode)
}

func TestActivateReturnsProducedState(t *testing.T) {
	root := NewRootScreen(data.DefaultScreenDefinition())
	button := root.Render().Button

	assert.True(t, button.Activate().IsNightMode)
	assert.False(t, button.Activate().IsNightMode)
	assert.Equal(t, AppState{}, NewWeatherButton("Switch", nil).Activate())
}
