package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("LISTEN_ADDRESS", "")
	t.Setenv("ICONS_DIR", "")
	t.Setenv("IMAGE_RENDER_RPS", "")
	t.Setenv("IMAGE_RENDER_BURST", "")

	assert.Equal(t, ":8080", GetListenAddress())
	assert.Equal(t, "icons", GetIconsPath())
	assert.Equal(t, float64(10), GetImageRenderRPS())
	assert.Equal(t, 5, GetImageRenderBurst())
}

func TestOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDRESS", "127.0.0.1:9000")
	t.Setenv("ICONS_DIR", "/srv/icons")
	t.Setenv("IMAGE_RENDER_RPS", "0.5")
	t.Setenv("IMAGE_RENDER_BURST", "2")

	assert.Equal(t, "127.0.0.1:9000", GetListenAddress())
	assert.Equal(t, "/srv/icons", GetIconsPath())
	assert.Equal(t, 0.5, GetImageRenderRPS())
	assert.Equal(t, 2, GetImageRenderBurst())
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("IMAGE_RENDER_RPS", "fast")
	t.Setenv("IMAGE_RENDER_BURST", "-3")

	assert.Equal(t, float64(10), GetImageRenderRPS())
	assert.Equal(t, 5, GetImageRenderBurst())
}
