package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuartleeks/home-dash/weather-screen/data"
	"github.com/stuartleeks/home-dash/weather-screen/screen"
)

func newTestRenderer(t *testing.T) *screenRenderer {
	t.Helper()
	sr, err := newScreenRenderer(t.TempDir(), "")
	require.NoError(t, err)
	return sr
}

func assertColorNear(t *testing.T, expected color.Color, actual color.Color) {
	t.Helper()
	er, eg, eb, _ := expected.RGBA()
	ar, ag, ab, _ := actual.RGBA()
	near := func(a, b uint32) bool {
		d := int(a>>8) - int(b>>8)
		return d >= -4 && d <= 4
	}
	assert.True(t, near(er, ar) && near(eg, ag) && near(eb, ab), "expected %v, got %v", expected, actual)
}

func TestDrawScreenImageBackground(t *testing.T) {
	sr := newTestRenderer(t)
	root := screen.NewRootScreen(data.DefaultScreenDefinition())

	dc, err := sr.drawScreenImage(root.Render())
	require.NoError(t, err)
	img := dc.Image()
	assert.Equal(t, image.Rect(0, 0, screenWidth, screenHeight), img.Bounds())
	assertColorNear(t, screen.ColorBlue, img.At(0, 0))
	assertColorNear(t, screen.ColorLightBlue, img.At(screenWidth-1, screenHeight-1))

	root.Render().Button.Activate()
	dc, err = sr.drawScreenImage(root.Render())
	require.NoError(t, err)
	img = dc.Image()
	assertColorNear(t, screen.ColorBlack, img.At(0, 0))
	assertColorNear(t, screen.ColorGray, img.At(screenWidth-1, screenHeight-1))
}

func TestDrawScreenImageButton(t *testing.T) {
	sr := newTestRenderer(t)
	dc, err := sr.drawScreenImage(screen.NewRootScreen(data.DefaultScreenDefinition()).Render())
	require.NoError(t, err)

	left := (screenWidth - screen.ButtonWidth) / 2
	centerY := screenHeight - 140 + screen.ButtonHeight/2
	assertColorNear(t, screen.ColorWhite, dc.Image().At(left+4, centerY))
}

func TestDrawScreenImageIsDeterministic(t *testing.T) {
	sr := newTestRenderer(t)
	root := screen.NewRootScreen(data.DefaultScreenDefinition())

	render := func() []byte {
		dc, err := sr.drawScreenImage(root.Render())
		require.NoError(t, err)
		b, _, err := encodeImage(dc, IMAGE_FORMAT_PNG)
		require.NoError(t, err)
		return b
	}

	day := render()
	assert.Equal(t, day, render())

	root.Render().Button.Activate()
	night := render()
	assert.NotEqual(t, day, night)

	root.Render().Button.Activate()
	assert.Equal(t, day, render())
}

func writeSolidPng(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDrawIconUsesAsset(t *testing.T) {
	sr := newTestRenderer(t)
	red := color.RGBA{R: 255, A: 255}
	writeSolidPng(t, filepath.Join(sr.iconsPath, data.ICON_SUN_MAX+".png"), red)

	dc := gg.NewContext(100, 100)
	require.NoError(t, sr.drawIcon(dc, data.ICON_SUN_MAX, 10, 10, 50))
	assertColorNear(t, red, dc.Image().At(35, 35))
	_, _, _, a := dc.Image().At(80, 80).RGBA()
	assert.Equal(t, uint32(0), a)
}

func TestDrawIconFallsBack(t *testing.T) {
	sr := newTestRenderer(t)

	for _, iconID := range []string{data.ICON_CLOUD_SUN, data.ICON_MOON_STARS, data.ICON_SUN_MAX, data.ICON_CLOUD_SNOW, data.ICON_CLOUD_SUN_RAIN, data.ICON_CLOUD_SUN_BOLT, "no.such.icon"} {
		dc := gg.NewContext(60, 60)
		require.NoError(t, sr.drawIcon(dc, iconID, 0, 0, 60), iconID)

		drawn := false
		bounds := dc.Image().Bounds()
		for x := bounds.Min.X; x < bounds.Max.X && !drawn; x++ {
			for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
				if _, _, _, a := dc.Image().At(x, y).RGBA(); a != 0 {
					drawn = true
					break
				}
			}
		}
		assert.True(t, drawn, "nothing drawn for %s", iconID)
	}
}

func TestDrawIconCorruptAsset(t *testing.T) {
	sr := newTestRenderer(t)
	require.NoError(t, os.WriteFile(filepath.Join(sr.iconsPath, "broken.png"), []byte("not a png"), 0o644))

	err := sr.drawIcon(gg.NewContext(10, 10), "broken", 0, 0, 10)
	assert.ErrorContains(t, err, "failed to load icon")
}

func TestEncodeImage(t *testing.T) {
	dc := gg.NewContext(20, 10)

	b, contentType, err := encodeImage(dc, "")
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	_, err = png.Decode(bytes.NewReader(b))
	assert.NoError(t, err)

	b, contentType, err = encodeImage(dc, IMAGE_FORMAT_JPEG)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	_, err = jpeg.Decode(bytes.NewReader(b))
	assert.NoError(t, err)

	_, _, err = encodeImage(dc, "gif")
	assert.Error(t, err)
}

func TestLoadFonts(t *testing.T) {
	fonts, err := loadFonts("")
	require.NoError(t, err)
	assert.NotNil(t, fonts.face(20, true))

	_, err = loadFonts(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.ErrorContains(t, err, "failed to load font")
}
