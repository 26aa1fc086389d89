package data

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gofrs/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ForecastDays is the number of entries in the forecast strip.
const ForecastDays = 5

const (
	ICON_CLOUD_SUN      = "cloud.sun.fill"
	ICON_MOON_STARS     = "moon.stars.fill"
	ICON_SUN_MAX        = "sun.max.fill"
	ICON_CLOUD_SNOW     = "cloud.snow.fill"
	ICON_CLOUD_SUN_RAIN = "cloud.sun.rain.fill"
	ICON_CLOUD_SUN_BOLT = "cloud.sun.bolt.fill"
)

const DefaultButtonTitle = "Change Day Time"

var ErrInvalidScreenDefinition = errors.New("invalid screen definition")

// forecastNamespace scopes the name-based forecast entry IDs
var forecastNamespace = uuid.NewV5(uuid.NamespaceURL, "https://github.com/stuartleeks/home-dash/weather-screen/forecast")

type ForecastEntry struct {
	ID           string `json:"id" yaml:"id"`
	DayLabel     string `json:"day_label" yaml:"day_label"`
	IconID       string `json:"icon_id" yaml:"icon_id"`
	TemperatureF int    `json:"temperature_f" yaml:"temperature_f"`
}

type CurrentConditions struct {
	LocationName string `json:"location_name" yaml:"location_name"`
	TemperatureF int    `json:"temperature_f" yaml:"temperature_f"`
	DayIconID    string `json:"day_icon_id" yaml:"day_icon_id"`
	NightIconID  string `json:"night_icon_id" yaml:"night_icon_id"`
}

// IconID selects the icon for the given day/night flag.
func (c CurrentConditions) IconID(isNightMode bool) string {
	if isNightMode {
		return c.NightIconID
	}
	return c.DayIconID
}

// ScreenDefinition is the fixed content of the screen. It is built once at
// startup and handed to the screen, which keeps its own copy.
type ScreenDefinition struct {
	Current     CurrentConditions `json:"current" yaml:"current"`
	Forecast    []ForecastEntry   `json:"forecast" yaml:"forecast"`
	ButtonTitle string            `json:"button_title" yaml:"button_title"`
}

// Clone returns a copy that shares no memory with d.
func (d ScreenDefinition) Clone() ScreenDefinition {
	d.Forecast = slices.Clone(d.Forecast)
	return d
}

func DefaultScreenDefinition() ScreenDefinition {
	def := ScreenDefinition{
		Current: CurrentConditions{
			LocationName: "Cupertino, CA",
			TemperatureF: 76,
			DayIconID:    ICON_CLOUD_SUN,
			NightIconID:  ICON_MOON_STARS,
		},
		Forecast: []ForecastEntry{
			{DayLabel: "TUE", IconID: ICON_CLOUD_SUN, TemperatureF: 60},
			{DayLabel: "WED", IconID: ICON_SUN_MAX, TemperatureF: 72},
			{DayLabel: "THU", IconID: ICON_CLOUD_SNOW, TemperatureF: 30},
			{DayLabel: "FRI", IconID: ICON_CLOUD_SUN_RAIN, TemperatureF: 89},
			{DayLabel: "SAT", IconID: ICON_CLOUD_SUN_BOLT, TemperatureF: 40},
		},
		ButtonTitle: DefaultButtonTitle,
	}
	assignForecastIDs(def.Forecast)
	return def
}

// ForecastEntryID derives a stable identifier from the entry position and day label.
func ForecastEntryID(index int, dayLabel string) string {
	return uuid.NewV5(forecastNamespace, fmt.Sprintf("%d:%s", index, dayLabel)).String()
}

func assignForecastIDs(entries []ForecastEntry) {
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = ForecastEntryID(i, entries[i].DayLabel)
		}
	}
}

// LoadScreenDefinition reads a JSON or YAML definition, or returns the
// built-in one when filename is empty.
func LoadScreenDefinition(filename string) (ScreenDefinition, error) {
	if filename == "" {
		return DefaultScreenDefinition(), nil
	}

	def, err := ReadSharedLock[ScreenDefinition](filename)
	if err != nil {
		return ScreenDefinition{}, fmt.Errorf("failed to read screen definition (%q): %w", filename, err)
	}

	normalize(def)
	if err := def.Validate(); err != nil {
		return ScreenDefinition{}, err
	}
	return *def, nil
}

func normalize(def *ScreenDefinition) {
	upper := cases.Upper(language.English)
	def.Current.LocationName = strings.TrimSpace(def.Current.LocationName)
	if def.Current.DayIconID == "" {
		def.Current.DayIconID = ICON_CLOUD_SUN
	}
	if def.Current.NightIconID == "" {
		def.Current.NightIconID = ICON_MOON_STARS
	}
	if def.ButtonTitle == "" {
		def.ButtonTitle = DefaultButtonTitle
	}
	for i := range def.Forecast {
		def.Forecast[i].DayLabel = upper.String(strings.TrimSpace(def.Forecast[i].DayLabel))
	}
	assignForecastIDs(def.Forecast)
}

func (d ScreenDefinition) Validate() error {
	if d.Current.LocationName == "" {
		return fmt.Errorf("%w: location name is empty", ErrInvalidScreenDefinition)
	}
	if len(d.Forecast) != ForecastDays {
		return fmt.Errorf("%w: expected %d forecast entries, got %d", ErrInvalidScreenDefinition, ForecastDays, len(d.Forecast))
	}
	seen := map[string]bool{}
	for i, entry := range d.Forecast {
		if entry.DayLabel == "" {
			return fmt.Errorf("%w: forecast entry %d has no day label", ErrInvalidScreenDefinition, i)
		}
		if entry.IconID == "" {
			return fmt.Errorf("%w: forecast entry %d (%s) has no icon", ErrInvalidScreenDefinition, i, entry.DayLabel)
		}
		if seen[entry.ID] {
			return fmt.Errorf("%w: duplicate forecast entry id %q", ErrInvalidScreenDefinition, entry.ID)
		}
		seen[entry.ID] = true
	}
	return nil
}
