//go:build cgo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/overgrown-games/melonpatch/internal/config"
	"github.com/overgrown-games/melonpatch/internal/gui"
	"github.com/overgrown-games/melonpatch/internal/logger"
)

// version and commit are injected at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var (
		showVersion bool
		headless    bool
	)
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&headless, "headless", false, "run the text client instead of the window")
	flag.Parse()

	if showVersion {
		fmt.Printf("Melon Patch %s (%s)\n", version, commit)
		return
	}

	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	var err error
	if headless {
		err = runREPL(cfg, log)
	} else {
		err = gui.NewApp(cfg, log).Run()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
