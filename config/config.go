package config

import (
	"log"
	"os"
	"strconv"
)

func GetListenAddress() string {
	address := os.Getenv("LISTEN_ADDRESS")
	if address == "" {
		address = ":8080"
	}
	return address
}

// GetScreenDefinitionPath returns the JSON/YAML screen definition to load.
// An empty value means the built-in definition is used.
func GetScreenDefinitionPath() string {
	return os.Getenv("SCREEN_DEFINITION_FILE")
}

func GetIconsPath() string {
	p := os.Getenv("ICONS_DIR")
	if p == "" {
		p = "icons"
	}
	return p
}

// GetFontPath returns a TTF file used instead of the embedded Go fonts
func GetFontPath() string {
	return os.Getenv("FONT_FILE")
}

func GetApplicationInsightsInstrumentationKey() string {
	return os.Getenv("APPLICATIONINSIGHTS_INSTRUMENTATION_KEY")
}

func GetImageRenderRPS() float64 {
	return getFloat("IMAGE_RENDER_RPS", 10)
}

func GetImageRenderBurst() int {
	return int(getFloat("IMAGE_RENDER_BURST", 5))
}

func getFloat(name string, defaultValue float64) float64 {
	value := os.Getenv(name)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		log.Printf("Ignoring invalid %s value %q, using %v", name, value, defaultValue)
		return defaultValue
	}
	return f
}
