package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bassamadnan/codeshare/codes"
	"github.com/bassamadnan/codeshare/config"
	"github.com/bassamadnan/codeshare/piston"
	"github.com/bassamadnan/codeshare/tui"
)

const (
	defaultConfigPath = "config/settings.json"
	logFilePath       = "codeshare.log"
)

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to the settings file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config path] [document-id]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0660)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("Application starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutdown signal received, cancelling context...")
		cancel()
	}()

	cfgManager, err := config.NewManager(*configPath)
	if err != nil {
		log.Fatalf("Failed to initialize config manager: %v", err)
	}
	log.Println("Config manager initialized.")

	documentID := flag.Arg(0)
	if documentID == "" {
		documentID = cfgManager.MostRecentDocument()
	}
	if documentID == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := cfgManager.AddRecentDocument(documentID); err != nil {
		log.Printf("Failed to remember document %s: %v", documentID, err)
	}

	settings := cfgManager.GetSettings()
	codesClient, err := codes.NewClient(ctx, settings)
	if err != nil {
		log.Fatalf("Failed to initialize codes client: %v", err)
	}
	runner, err := piston.NewClient(settings)
	if err != nil {
		log.Fatalf("Failed to initialize execution client: %v", err)
	}
	log.Printf("Clients initialized for %s (runner %s).", settings.BaseURL, settings.ExecuteURL)

	app, err := tui.NewApp(ctx, cfgManager, documentID, tui.Services{
		Access: codesClient,
		Saver:  codesClient,
		Runner: runner,
	})
	if err != nil {
		log.Fatalf("Failed to initialize TUI: %v", err)
	}
	log.Println("TUI application initialized.")

	if err := app.Run(); err != nil {
		log.Fatalf("Error running TUI application: %v", err)
	}

	log.Println("TUI application stopped. Exiting.")
}
