/*
Rampart renders a small castle scene and orbits a camera around it. The
scene layout, window and live-reload behavior come from rampart.toml.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/rampart/engine"
	"github.com/spaghettifunk/rampart/engine/config"
	"github.com/spaghettifunk/rampart/testbed"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		panic(err)
	}

	game, err := testbed.NewCastleGame(cfg)
	if err != nil {
		panic(err)
	}

	eng, err := engine.New(game.Game)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = eng.Shutdown()
	}()

	// run engine
	if err := eng.Run(); err != nil {
		panic(err)
	}
}
