//go:build !cgo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/overgrown-games/melonpatch/internal/config"
	"github.com/overgrown-games/melonpatch/internal/logger"
)

// version and commit are injected at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Melon Patch %s (%s) headless\n", version, commit)
		return
	}

	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := runREPL(cfg, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
