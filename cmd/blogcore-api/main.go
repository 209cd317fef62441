package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/blogcore-dev/blogcore/internal/config"
	"github.com/blogcore-dev/blogcore/internal/logger"
	"github.com/blogcore-dev/blogcore/internal/router"
	"github.com/blogcore-dev/blogcore/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	addr := cfg.Public.Addr
	if addr == "" {
		addr = ":8080"
	}
	logger.Log.Info("server started", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
