package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/internal/config"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/internal/log"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/carousel"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/pinning"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/profile"
	"github.com/nodrinksonthepiano/ArtisTalks112025-sub000/pkg/web"
)

func main() {
	profilePath := flag.String("profile", config.ProfilePath(), "Path to the deck profile YAML")
	port := flag.String("port", config.Port(), "HTTP listen port")
	staticDir := flag.String("static", config.StaticDir(), "Static frontend directory")
	hz := flag.Float64("hz", config.FrameHz(), "Frame loop rate")
	flag.Parse()

	log.Init(config.LogLevel())

	prof, err := profile.Load(*profilePath)
	if err != nil {
		log.Error("failed to load profile", "path", *profilePath, "error", err)
		os.Exit(1)
	}
	log.Info("profile loaded", "path", *profilePath, "cards", prof.Deck.Len(), "tokens", len(prof.Tokens))

	opts := carousel.DefaultOptions()
	opts.Theme = prof.Theme
	opts.Tokens = prof.Tokens
	opts.OnIndexChange = func(index int) {
		log.Debug("active card changed", "index", index)
	}

	car := carousel.New(prof.Deck, opts)

	var server *web.Server
	runner := carousel.NewRunner(car, *hz, func(snap carousel.Snapshot) {
		server.BroadcastSnapshot(snap)
	})
	server = web.NewServer(*port, *staticDir, runner, web.StaticTokenProvider{Token: config.SessionToken()})

	// Pin against a placeholder viewport so the first frame is coherent;
	// the first client viewport message re-pins to the real dimensions.
	car.Start(pinning.Viewport{Width: 1280, Height: 800}, time.Now())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runner.Run(gctx)
	})

	g.Go(func() error {
		return server.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		return server.Shutdown()
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Error("engine exited", "error", err)
		os.Exit(1)
	}
	log.Info("goodbye")
}
