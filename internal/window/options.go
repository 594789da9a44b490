// Package window shows the birthday scene in a desktop window.
package window

import (
	"github.com/charmbracelet/log"

	settings "github.com/tomz197/birthday/internal/config"
	"github.com/tomz197/birthday/internal/scene"
)

// Options configures the window.
type Options struct {
	Scene    settings.Scene
	Textures scene.TextureSource
	Logger   *log.Logger

	Width      int // Initial window size in screen pixels
	Height     int
	PixelScale int // Screen pixels per rendered pixel, per axis
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Width <= 0 {
		o.Width = 960
	}
	if o.Height <= 0 {
		o.Height = 640
	}
	if o.PixelScale <= 0 {
		o.PixelScale = 2
	}
}
