package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/stuartleeks/home-dash/weather-screen/data"
)

const (
	iconSunColor   = "#FFCC00"
	iconCloudColor = "#FFFFFF"
	iconMoonColor  = "#F5F3CE"
	iconRainColor  = "#4FA3FF"
	iconBoltColor  = "#FFD60A"
)

type glyphFunc func(dc *gg.Context, x, y, size float64)

// builtinGlyphs are drawn when no PNG asset exists for an icon
var builtinGlyphs = map[string]glyphFunc{
	data.ICON_CLOUD_SUN:      drawCloudSunGlyph,
	data.ICON_MOON_STARS:     drawMoonStarsGlyph,
	data.ICON_SUN_MAX:        drawSunGlyph,
	data.ICON_CLOUD_SNOW:     drawCloudSnowGlyph,
	data.ICON_CLOUD_SUN_RAIN: drawCloudSunRainGlyph,
	data.ICON_CLOUD_SUN_BOLT: drawCloudSunBoltGlyph,
}

// drawIcon draws <iconsPath>/<iconID>.png scaled into a size x size square at
// (x, y). Missing assets fall back to a built-in glyph, then to a placeholder.
func (sr *screenRenderer) drawIcon(dc *gg.Context, iconID string, x, y int, size int) error {
	iconPath := filepath.Join(sr.iconsPath, filepath.Base(iconID)+".png")
	icon, err := loadAndResizePng(iconPath, size, size)
	if err == nil {
		dc.DrawImage(icon, x, y)
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load icon (%q): %w", iconPath, err)
	}

	dc.Push()
	defer dc.Pop()
	if glyph, ok := builtinGlyphs[iconID]; ok {
		glyph(dc, float64(x), float64(y), float64(size))
	} else {
		drawPlaceholderGlyph(dc, float64(x), float64(y), float64(size))
	}
	return nil
}

func drawPlaceholderGlyph(dc *gg.Context, x, y, size float64) {
	inset := size * 0.1
	dc.SetHexColor("#FFFFFF")
	dc.SetLineWidth(math.Max(1, size/30))
	dc.SetDash(size/12, size/20)
	dc.DrawRoundedRectangle(x+inset, y+inset, size-2*inset, size-2*inset, size*0.12)
	dc.Stroke()
	dc.SetDash()

	dc.SetLineWidth(math.Max(1, size/15))
	cx, cy := x+size/2, y+size/2
	r := size * 0.14
	dc.DrawArc(cx, cy-r*0.6, r, math.Pi, 2.5*math.Pi)
	dc.LineTo(cx, cy+r*0.9)
	dc.Stroke()
	dc.DrawCircle(cx, cy+r*1.7, math.Max(1, size/28))
	dc.Fill()
}

func drawSun(dc *gg.Context, cx, cy, r float64) {
	dc.SetHexColor(iconSunColor)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	dc.SetLineWidth(math.Max(1, r/4))
	dc.SetLineCap(gg.LineCapRound)
	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		cos, sin := math.Cos(angle), math.Sin(angle)
		dc.DrawLine(cx+cos*r*1.35, cy+sin*r*1.35, cx+cos*r*1.75, cy+sin*r*1.75)
	}
	dc.Stroke()
}

// drawCloud fills a cloud inside the box whose top-left is (x, y) and width w.
func drawCloud(dc *gg.Context, x, y, w float64) {
	h := w * 0.6
	dc.SetHexColor(iconCloudColor)
	dc.DrawCircle(x+0.3*w, y+0.6*h, 0.2*w)
	dc.DrawCircle(x+0.52*w, y+0.42*h, 0.26*w)
	dc.DrawCircle(x+0.74*w, y+0.62*h, 0.18*w)
	dc.DrawRoundedRectangle(x+0.1*w, y+0.55*h, 0.8*w, 0.4*h, 0.2*h)
	dc.Fill()
}

func drawSunGlyph(dc *gg.Context, x, y, size float64) {
	drawSun(dc, x+size/2, y+size/2, size*0.26)
}

func drawCloudSunGlyph(dc *gg.Context, x, y, size float64) {
	drawSun(dc, x+size*0.64, y+size*0.34, size*0.17)
	drawCloud(dc, x, y+size*0.3, size*0.9)
}

func drawCloudSnowGlyph(dc *gg.Context, x, y, size float64) {
	drawCloud(dc, x+size*0.05, y+size*0.1, size*0.9)
	dc.SetHexColor(iconCloudColor)
	for i := 0; i < 3; i++ {
		dc.DrawCircle(x+size*(0.3+0.2*float64(i)), y+size*(0.78+0.06*float64(i%2)), size*0.045)
	}
	dc.Fill()
}

func drawCloudSunRainGlyph(dc *gg.Context, x, y, size float64) {
	drawSun(dc, x+size*0.64, y+size*0.26, size*0.15)
	drawCloud(dc, x, y+size*0.2, size*0.9)

	dc.SetHexColor(iconRainColor)
	dc.SetLineWidth(math.Max(1, size/25))
	dc.SetLineCap(gg.LineCapRound)
	for i := 0; i < 3; i++ {
		dropX := x + size*(0.28+0.2*float64(i))
		dc.DrawLine(dropX, y+size*0.78, dropX-size*0.06, y+size*0.92)
	}
	dc.Stroke()
}

func drawCloudSunBoltGlyph(dc *gg.Context, x, y, size float64) {
	drawSun(dc, x+size*0.64, y+size*0.26, size*0.15)
	drawCloud(dc, x, y+size*0.2, size*0.9)

	dc.SetHexColor(iconBoltColor)
	dc.MoveTo(x+size*0.5, y+size*0.66)
	dc.LineTo(x+size*0.36, y+size*0.84)
	dc.LineTo(x+size*0.47, y+size*0.84)
	dc.LineTo(x+size*0.4, y+size*0.99)
	dc.LineTo(x+size*0.6, y+size*0.78)
	dc.LineTo(x+size*0.49, y+size*0.78)
	dc.LineTo(x+size*0.56, y+size*0.66)
	dc.ClosePath()
	dc.Fill()
}

func drawMoonStarsGlyph(dc *gg.Context, x, y, size float64) {
	cx, cy, r := x+size*0.45, y+size*0.55, size*0.32

	// crescent: clip out an offset disc, then fill the moon disc
	dc.DrawCircle(cx+r*0.45, cy-r*0.35, r*0.85)
	dc.Clip()
	dc.InvertMask()
	dc.SetHexColor(iconMoonColor)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()
	dc.ResetClip()

	dc.SetHexColor(iconMoonColor)
	drawStar(dc, x+size*0.76, y+size*0.2, size*0.08)
	drawStar(dc, x+size*0.86, y+size*0.42, size*0.05)
	dc.Fill()
}

func drawStar(dc *gg.Context, cx, cy, r float64) {
	dc.NewSubPath()
	for i := 0; i < 8; i++ {
		radius := r
		if i%2 == 1 {
			radius = r * 0.35
		}
		angle := float64(i)*math.Pi/4 - math.Pi/2
		dc.LineTo(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
	}
	dc.ClosePath()
}
