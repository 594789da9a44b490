package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/birthday/internal/config"
	"github.com/tomz197/birthday/internal/loop"
	loopconfig "github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/scene"
)

func main() {
	logger := config.NewLogger("game")
	if err := run(logger); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	sc, err := config.LoadScene(config.GetEnv("SCENE_CONFIG", ""))
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader := scene.NewLoader(scene.LoaderOptions{
		MaxWidth:  loopconfig.TextureMaxWidth,
		MaxHeight: loopconfig.TextureMaxHeight,
	})

	return loop.Run(ctx, loop.Options{
		Reader:   bufio.NewReader(os.Stdin),
		Writer:   os.Stdout,
		Scene:    sc,
		Textures: loader,
		Logger:   logger,
		Profile:  config.ColorProfile(termenv.EnvColorProfile()),
	})
}
