package main

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/stuartleeks/home-dash/weather-screen/screen"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
)

const (
	screenWidth  = 390
	screenHeight = 844

	IMAGE_FORMAT_PNG  = "png"
	IMAGE_FORMAT_JPEG = "jpeg"
)

type fontSet struct {
	medium *truetype.Font
	bold   *truetype.Font
}

// loadFonts parses the embedded Go fonts, or fontPath for both weights when set.
func loadFonts(fontPath string) (*fontSet, error) {
	if fontPath != "" {
		fontBytes, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load font: %w", err)
		}
		f, err := truetype.Parse(fontBytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font (%q): %w", fontPath, err)
		}
		return &fontSet{medium: f, bold: f}, nil
	}

	medium, err := truetype.Parse(gomedium.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &fontSet{medium: medium, bold: bold}, nil
}

func (fs *fontSet) face(size float64, bold bool) font.Face {
	f := fs.medium
	if bold {
		f = fs.bold
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

type screenRenderer struct {
	fonts     *fontSet
	iconsPath string
}

func newScreenRenderer(iconsPath string, fontPath string) (*screenRenderer, error) {
	fonts, err := loadFonts(fontPath)
	if err != nil {
		return nil, err
	}
	return &screenRenderer{fonts: fonts, iconsPath: iconsPath}, nil
}

func (sr *screenRenderer) drawScreenImage(s screen.Screen) (*gg.Context, error) {
	img := image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))
	dc := gg.NewContextForRGBA(img)

	drawBackground(dc, s.Background)

	top, err := sr.drawCurrentWeather(dc, s.CurrentWeather, 50)
	if err != nil {
		return nil, err
	}
	if _, err := sr.drawWeeklyWeather(dc, s.WeeklyWeather, top+30); err != nil {
		return nil, err
	}
	sr.drawButton(dc, s.Button, screenHeight-140)

	return dc, nil
}

func drawBackground(dc *gg.Context, bg screen.BackgroundView) {
	width := float64(dc.Width())
	height := float64(dc.Height())

	// topLeading to bottomTrailing
	gradient := gg.NewLinearGradient(0, 0, width, height)
	gradient.AddColorStop(0, bg.Colors[0])
	gradient.AddColorStop(1, bg.Colors[1])

	dc.SetFillStyle(gradient)
	dc.DrawRectangle(0, 0, width, height)
	dc.Fill()
}

// drawCurrentWeather draws location, icon and temperature from top down and
// returns the y position below the block.
func (sr *screenRenderer) drawCurrentWeather(dc *gg.Context, v screen.CurrentWeatherView, top float64) (float64, error) {
	centerX := float64(dc.Width()) / 2
	padding := float64(16)

	dc.SetColor(screen.ColorWhite)
	dc.SetFontFace(sr.fonts.face(v.Metrics.LabelFontSize, false))
	top += padding
	top += drawStringCentered(dc, v.LocationName, centerX, top)
	top += padding

	iconSize := int(v.Metrics.IconSize)
	if err := sr.drawIcon(dc, v.IconID, int(centerX)-iconSize/2, int(top), iconSize); err != nil {
		return 0, err
	}
	top += v.Metrics.IconSize + 10

	dc.SetColor(screen.ColorWhite)
	dc.SetFontFace(sr.fonts.face(v.Metrics.TemperatureFontSize, false))
	top += padding
	top += drawStringCentered(dc, v.TemperatureText(), centerX, top)
	top += padding + 40

	return top, nil
}

func (sr *screenRenderer) drawWeeklyWeather(dc *gg.Context, v screen.WeeklyWeatherView, top float64) (float64, error) {
	type column struct {
		day   screen.WeatherDayView
		width float64
	}

	// Column widths first so the strip can be centred
	var columns []column
	totalWidth := float64(0)
	for day := range v.Days() {
		width := day.Metrics.IconSize
		dc.SetFontFace(sr.fonts.face(day.Metrics.LabelFontSize, false))
		if w, _ := dc.MeasureString(day.DayLabel); w > width {
			width = w
		}
		dc.SetFontFace(sr.fonts.face(day.Metrics.TemperatureFontSize, false))
		if w, _ := dc.MeasureString(day.TemperatureText()); w > width {
			width = w
		}
		if len(columns) > 0 {
			totalWidth += screen.WeeklyWeatherSpacing
		}
		totalWidth += width
		columns = append(columns, column{day: day, width: width})
	}

	bottom := top
	left := (float64(dc.Width()) - totalWidth) / 2
	for _, c := range columns {
		centerX := left + c.width/2
		currentTop := top

		dc.SetColor(screen.ColorWhite)
		dc.SetFontFace(sr.fonts.face(c.day.Metrics.LabelFontSize, false))
		currentTop += drawStringCentered(dc, c.day.DayLabel, centerX, currentTop) + 8

		iconSize := int(c.day.Metrics.IconSize)
		if err := sr.drawIcon(dc, c.day.IconID, int(centerX)-iconSize/2, int(currentTop), iconSize); err != nil {
			return 0, err
		}
		currentTop += c.day.Metrics.IconSize + 8

		dc.SetColor(screen.ColorWhite)
		dc.SetFontFace(sr.fonts.face(c.day.Metrics.TemperatureFontSize, false))
		currentTop += drawStringCentered(dc, c.day.TemperatureText(), centerX, currentTop)

		if currentTop > bottom {
			bottom = currentTop
		}
		left += c.width + screen.WeeklyWeatherSpacing
	}

	return bottom, nil
}

func (sr *screenRenderer) drawButton(dc *gg.Context, b screen.WeatherButton, top float64) {
	left := (float64(dc.Width()) - screen.ButtonWidth) / 2

	dc.SetColor(screen.ColorWhite)
	dc.DrawRoundedRectangle(left, top, screen.ButtonWidth, screen.ButtonHeight, screen.ButtonCornerRadius)
	dc.Fill()

	dc.SetColor(screen.ColorBlue)
	dc.SetFontFace(sr.fonts.face(screen.ButtonFontSize, true))
	dc.DrawStringAnchored(b.Label(), left+screen.ButtonWidth/2, top+screen.ButtonHeight/2, 0.5, 0.35)
}

// drawStringCentered draws text with its top at y and returns the text height.
func drawStringCentered(dc *gg.Context, text string, x, y float64) float64 {
	w, h := dc.MeasureString(text)
	dc.DrawString(text, x-w/2, y+h)
	return h
}

func loadAndResizePng(imagePath string, width int, height int) (*image.RGBA, error) {
	imageFile, err := os.Open(imagePath)
	if err != nil {
		return nil, err
	}
	defer imageFile.Close()

	sourceImage, err := png.Decode(imageFile)
	if err != nil {
		return nil, err
	}

	destImage := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(destImage, destImage.Rect, sourceImage, sourceImage.Bounds(), draw.Over, nil)
	return destImage, nil
}

func encodeImage(dc *gg.Context, format string) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	switch format {
	case "", IMAGE_FORMAT_PNG:
		if err := dc.EncodePNG(buf); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	case IMAGE_FORMAT_JPEG, "jpg":
		if err := dc.EncodeJPG(buf, &jpeg.Options{Quality: 100}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	default:
		return nil, "", fmt.Errorf("unsupported image format %q", format)
	}
}
