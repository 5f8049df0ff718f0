// Surflab is an interactive control panel for the surface viewer: every
// parameter is a widget and the surface renders into an offscreen preview.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/surfview/internal/config"
	"github.com/Faultbox/surfview/internal/logger"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	lab, err := NewLab(cfg)
	if err != nil {
		logger.Error("failed to create lab", zap.Error(err))
		os.Exit(1)
	}
	defer lab.Close()

	lab.Run()
}
