package screen

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/stuartleeks/home-dash/weather-screen/data"
)

// Color is a named sRGB colour. It implements color.Color so it can be used
// directly as a gradient stop.
type Color struct {
	Name    string
	R, G, B uint8
}

func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name string `json:"name"`
		Hex  string `json:"hex"`
	}{c.Name, c.Hex()})
}

var (
	ColorBlack     = Color{Name: "black", R: 0x00, G: 0x00, B: 0x00}
	ColorGray      = Color{Name: "gray", R: 0x8E, G: 0x8E, B: 0x93}
	ColorBlue      = Color{Name: "blue", R: 0x00, G: 0x7A, B: 0xFF}
	ColorLightBlue = Color{Name: "lightBlue", R: 0xAD, G: 0xD8, B: 0xE6}
	ColorWhite     = Color{Name: "white", R: 0xFF, G: 0xFF, B: 0xFF}
)

type UnitPoint string

const (
	TopLeading     UnitPoint = "topLeading"
	BottomTrailing UnitPoint = "bottomTrailing"
)

type BackgroundView struct {
	Colors     [2]Color  `json:"colors"`
	StartPoint UnitPoint `json:"start_point"`
	EndPoint   UnitPoint `json:"end_point"`
}

// NewBackgroundView maps the flag to one of exactly two gradients.
func NewBackgroundView(isNightMode bool) BackgroundView {
	colors := [2]Color{ColorBlue, ColorLightBlue}
	if isNightMode {
		colors = [2]Color{ColorBlack, ColorGray}
	}
	return BackgroundView{
		Colors:     colors,
		StartPoint: TopLeading,
		EndPoint:   BottomTrailing,
	}
}

// Size of the icon and fonts, in points.
type Metrics struct {
	IconSize            float64 `json:"icon_size"`
	LabelFontSize       float64 `json:"label_font_size"`
	TemperatureFontSize float64 `json:"temperature_font_size"`
}

var (
	currentWeatherMetrics = Metrics{IconSize: 180, LabelFontSize: 32, TemperatureFontSize: 70}
	weatherDayMetrics     = Metrics{IconSize: 40, LabelFontSize: 20, TemperatureFontSize: 30}
)

type CurrentWeatherView struct {
	LocationName string  `json:"location_name"`
	IconID       string  `json:"icon_id"`
	TemperatureF int     `json:"temperature_f"`
	Metrics      Metrics `json:"metrics"`
}

func NewCurrentWeatherView(locationName string, iconID string, temperatureF int) CurrentWeatherView {
	return CurrentWeatherView{
		LocationName: locationName,
		IconID:       iconID,
		TemperatureF: temperatureF,
		Metrics:      currentWeatherMetrics,
	}
}

func (v CurrentWeatherView) TemperatureText() string {
	return temperatureText(v.TemperatureF)
}

// Texts returns the visible strings top to bottom.
func (v CurrentWeatherView) Texts() []string {
	return []string{v.LocationName, v.TemperatureText()}
}

type WeatherDayView struct {
	ID           string  `json:"id"`
	DayLabel     string  `json:"day_label"`
	IconID       string  `json:"icon_id"`
	TemperatureF int     `json:"temperature_f"`
	Metrics      Metrics `json:"metrics"`
}

func NewWeatherDayView(entry data.ForecastEntry) WeatherDayView {
	return WeatherDayView{
		ID:           entry.ID,
		DayLabel:     entry.DayLabel,
		IconID:       entry.IconID,
		TemperatureF: entry.TemperatureF,
		Metrics:      weatherDayMetrics,
	}
}

func (v WeatherDayView) TemperatureText() string {
	return temperatureText(v.TemperatureF)
}

func (v WeatherDayView) Texts() []string {
	return []string{v.DayLabel, v.TemperatureText()}
}

// WeeklyWeatherSpacing is the horizontal gap between day views.
const WeeklyWeatherSpacing = 20

type WeeklyWeatherView struct {
	entries []data.ForecastEntry
}

// NewWeeklyWeatherView keeps the entries as given; callers hand over a copy
// they no longer mutate.
func NewWeeklyWeatherView(entries []data.ForecastEntry) WeeklyWeatherView {
	return WeeklyWeatherView{entries: entries}
}

// Days yields one day view per entry, in order. Each call starts over.
func (v WeeklyWeatherView) Days() iter.Seq[WeatherDayView] {
	return func(yield func(WeatherDayView) bool) {
		for _, entry := range v.entries {
			if !yield(NewWeatherDayView(entry)) {
				return
			}
		}
	}
}

func (v WeeklyWeatherView) Len() int {
	return len(v.entries)
}

func (v WeeklyWeatherView) MarshalJSON() ([]byte, error) {
	days := make([]WeatherDayView, 0, len(v.entries))
	for day := range v.Days() {
		days = append(days, day)
	}
	return json.Marshal(struct {
		Spacing int              `json:"spacing"`
		Days    []WeatherDayView `json:"days"`
	}{WeeklyWeatherSpacing, days})
}

const (
	ButtonWidth        = 280
	ButtonHeight       = 50
	ButtonCornerRadius = 10
	ButtonFontSize     = 20
)

type WeatherButton struct {
	Title      string `json:"title"`
	onActivate func() AppState
}

// NewWeatherButton wires the button to onActivate, which applies the
// activation and returns the state it produced.
func NewWeatherButton(title string, onActivate func() AppState) WeatherButton {
	return WeatherButton{Title: title, onActivate: onActivate}
}

// Label is the text drawn on the button.
func (b WeatherButton) Label() string {
	return b.Title
}

// Activate reports the tap to the owner of the state and returns the state
// that this activation produced.
func (b WeatherButton) Activate() AppState {
	if b.onActivate == nil {
		return AppState{}
	}
	return b.onActivate()
}

func (b WeatherButton) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label      string `json:"label"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		Background Color  `json:"background"`
		Foreground Color  `json:"foreground"`
	}{b.Label(), ButtonWidth, ButtonHeight, ColorWhite, ColorBlue})
}

func temperatureText(temperatureF int) string {
	return fmt.Sprintf("%d°", temperatureF)
}
