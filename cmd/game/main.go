package main

import (
	"flag"
	"os"

	"github.com/Garsondee/Iso-City/internal/game"
	"github.com/Garsondee/Iso-City/internal/logger"
	"github.com/Garsondee/Iso-City/internal/tuning"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to tuning.yaml (defaults built in)")
	flag.Parse()

	tu := tuning.Default()
	if configPath != "" {
		var err error
		if tu, err = tuning.Load(configPath); err != nil {
			logger.Log.WithError(err).Fatal("load tuning")
		}
	}
	logger.Init(tu.LogLevel, tu.LogFormat, os.Stdout)

	ebiten.SetWindowTitle(tu.Window.Title)
	ebiten.SetWindowSize(tu.Window.Width, tu.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game.New(tu, nil)); err != nil {
		logger.Log.WithError(err).Fatal("game exited")
	}
}
