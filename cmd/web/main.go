package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tomz197/birthday/internal/config"
	"github.com/tomz197/birthday/internal/loop"
	loopconfig "github.com/tomz197/birthday/internal/loop/config"
	"github.com/tomz197/birthday/internal/scene"
	"github.com/tomz197/birthday/internal/web"
)

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = "8080"
	defaultAssetsDir = "assets"
)

func main() {
	logger := config.NewLogger("web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_PORT", "2222")
	assetsDir := config.GetEnv("ASSETS_DIR", defaultAssetsDir)

	sc, err := config.LoadScene(config.GetEnv("SCENE_CONFIG", ""))
	if err != nil {
		logger.Fatal("load scene", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One shared stage for snapshots. Paintings appear as they load.
	stage := loop.Build(ctx, sc, scene.NewLoader(scene.LoaderOptions{
		MaxWidth:  loopconfig.TextureMaxWidth,
		MaxHeight: loopconfig.TextureMaxHeight,
	}), logger, nil)
	defer stage.Assembler.Wait()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	web.NewHandler(web.Options{
		Title:    sc.Message.Title,
		Subtitle: sc.Message.Subtitle,
		SSHHost:  sshHost,
		SSHPort:  sshPort,
		Graph:    stage.Graph,
		Assets:   os.DirFS(assetsDir),
		Logger:   logger,
	}).RegisterRoutes(r)

	addr := net.JoinHostPort(host, port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("starting web server", "url", "http://"+addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		stop()
		os.Exit(1)
	}
}
