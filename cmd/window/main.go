package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/birthday/internal/config"
	loopconfig "github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/scene"
	"github.com/tomz197/birthday/internal/window"
)

func main() {
	logger := config.NewLogger("window")

	sc, err := config.LoadScene(config.GetEnv("SCENE_CONFIG", ""))
	if err != nil {
		logger.Fatal("load scene", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := scene.NewLoader(scene.LoaderOptions{
		MaxWidth:  loopconfig.TextureMaxWidth * 2,
		MaxHeight: loopconfig.TextureMaxHeight * 2,
	})

	if err := window.Run(ctx, window.Options{
		Scene:    sc,
		Textures: loader,
		Logger:   logger,
	}); err != nil {
		logger.Error("window error", "err", err)
		stop()
		os.Exit(1)
	}
}
