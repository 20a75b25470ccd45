package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	playerctl "github.com/FliegendeWurst/go-playerctl"
)

var (
	colorFlag     string
	noArtworkFlag bool
	debugFlag     bool
)

func init() {
	flag.StringVar(&colorFlag, "color", "2", "Set the desired color (name or hex)")
	flag.StringVar(&colorFlag, "c", "2", "Set the desired color (shorthand)")
	flag.BoolVar(&noArtworkFlag, "no-artwork", false, "Disable album artwork display")
	flag.BoolVar(&debugFlag, "debug", false, "Write debug logs to a file")
}

// newLogger returns a file-backed development logger when debugging is
// on. The TUI owns the terminal, so logs never go to stderr.
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	logPath := filepath.Join(os.TempDir(), "nowplaying.log")
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}
	return cfg.Build()
}

func main() {
	flag.Parse()
	initConfig()

	logger, err := newLogger(debugFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Get()
	client := playerctl.New(playerctl.WithBinary(cfg.Player.Binary))
	logger.Info("starting", zap.String("binary", cfg.Player.Binary))

	initialModel := model{
		client:        client,
		logger:        logger,
		color:         cfg.UI.Color,
		supportsKitty: supportsKittyGraphics() && !noArtworkFlag,
	}

	if _, err := tea.NewProgram(initialModel, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
