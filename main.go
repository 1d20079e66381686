package main

import (
	"embed"
	"flag"
	"log"

	"github.com/roju/auto-live-recorder/internal/di"
	"github.com/roju/auto-live-recorder/internal/structures"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "", "path to config.yaml (defaults to the user config dir)")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable debug logging")
	flag.Parse()

	app, err := di.InitApp(flags)
	if err != nil {
		log.Fatalf("init: %s", err)
	}

	err = wails.Run(&options.App{
		Title:  "AutoLiveRecorder",
		Width:  1024,
		Height: 720,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		OnStartup:  app.Startup,
		OnShutdown: app.Shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		log.Fatalf("run: %s", err)
	}
}
