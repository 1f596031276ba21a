// Package main provides the entry point for the ELISpot Analyzer application.
package main

import (
	"os"

	"elispot-analyzer/internal/app"
	"elispot-analyzer/internal/logger"
	"elispot-analyzer/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
)

func main() {
	log := logger.NewConsoleLogger(zerolog.InfoLevel)

	fyneApp := fyneapp.NewWithID("org.elispot.analyzer")
	appState := app.NewState()

	win := mainwindow.New(fyneApp, appState)

	// An image path on the command line is opened at startup.
	if len(os.Args) > 1 {
		path := os.Args[1]
		if err := appState.LoadImage(path); err != nil {
			log.Error("startup", err, map[string]interface{}{"path": path})
		}
	}

	win.ShowAndRun()
}
