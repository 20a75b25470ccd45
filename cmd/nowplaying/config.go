package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Player struct {
		Binary string `mapstructure:"binary"`
	} `mapstructure:"player"`
	UI struct {
		Color     string `mapstructure:"color"`
		ColorMode string `mapstructure:"color_mode"`
		MaxWidth  int    `mapstructure:"max_width"`
	} `mapstructure:"ui"`
	Artwork struct {
		Enabled      bool `mapstructure:"enabled"`
		Padding      int  `mapstructure:"padding"`
		WidthPixels  int  `mapstructure:"width_pixels"`
		WidthColumns int  `mapstructure:"width_columns"`
	} `mapstructure:"artwork"`
	Text struct {
		MaxLengthWithArt int `mapstructure:"max_length_with_art"`
		MaxLengthNoArt   int `mapstructure:"max_length_no_art"`
	} `mapstructure:"text"`
	Timing struct {
		UIRefreshMs int `mapstructure:"ui_refresh_ms"`
		DataFetchMs int `mapstructure:"data_fetch_ms"`
	} `mapstructure:"timing"`
}

// SafeConfig wraps Config with thread-safe access
type SafeConfig struct {
	mu  sync.RWMutex
	cfg Config
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SafeConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.cfg
}

// Set updates the config (thread-safe write)
func (sc *SafeConfig) Set(cfg Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg = cfg
}

var config = &SafeConfig{}

// Config file changed notification
type configReloadMsg struct{}

var configChangeChan = make(chan struct{}, 1)

// Watch for config file changes
func watchConfigCmd() tea.Cmd {
	return func() tea.Msg {
		<-configChangeChan
		return configReloadMsg{}
	}
}

// isValidColor accepts ANSI color codes ("0"-"255") and hex colors
// ("#RGB" or "#RRGGBB").
func isValidColor(color string) bool {
	if color == "" {
		return false
	}
	if color[0] == '#' {
		hex := color[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return false
		}
		for _, c := range hex {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
				return false
			}
		}
		return true
	}
	if len(color) > 3 {
		return false
	}
	for _, c := range color {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// validateConfig checks the loaded config for values that would break
// rendering and returns one error per problem found.
func validateConfig(cfg *Config) []error {
	var errs []error

	if cfg.Player.Binary == "" {
		errs = append(errs, fmt.Errorf("player.binary must not be empty"))
	}
	if cfg.UI.ColorMode != "manual" && cfg.UI.ColorMode != "auto" {
		errs = append(errs, fmt.Errorf("ui.color_mode must be \"manual\" or \"auto\", got %q", cfg.UI.ColorMode))
	}
	if !isValidColor(cfg.UI.Color) {
		errs = append(errs, fmt.Errorf("ui.color %q is not an ANSI code or hex color", cfg.UI.Color))
	}
	if cfg.UI.MaxWidth < 20 {
		errs = append(errs, fmt.Errorf("ui.max_width must be at least 20, got %d", cfg.UI.MaxWidth))
	}
	if cfg.Artwork.Padding < 0 || cfg.Artwork.Padding >= cfg.UI.MaxWidth {
		errs = append(errs, fmt.Errorf("artwork.padding must be within [0, ui.max_width), got %d", cfg.Artwork.Padding))
	}
	if cfg.Artwork.WidthPixels <= 0 {
		errs = append(errs, fmt.Errorf("artwork.width_pixels must be positive, got %d", cfg.Artwork.WidthPixels))
	}
	if cfg.Artwork.WidthColumns <= 0 {
		errs = append(errs, fmt.Errorf("artwork.width_columns must be positive, got %d", cfg.Artwork.WidthColumns))
	}
	if cfg.Text.MaxLengthWithArt <= 0 || cfg.Text.MaxLengthNoArt <= 0 {
		errs = append(errs, fmt.Errorf("text lengths must be positive"))
	}
	if cfg.Timing.UIRefreshMs < 50 {
		errs = append(errs, fmt.Errorf("timing.ui_refresh_ms must be at least 50, got %d", cfg.Timing.UIRefreshMs))
	}
	if cfg.Timing.DataFetchMs < 100 {
		errs = append(errs, fmt.Errorf("timing.data_fetch_ms must be at least 100, got %d", cfg.Timing.DataFetchMs))
	}

	return errs
}

func initConfig() {
	// Set defaults
	viper.SetDefault("player.binary", "playerctl")
	viper.SetDefault("ui.color", "2")
	viper.SetDefault("ui.color_mode", "manual")
	viper.SetDefault("ui.max_width", 45)
	viper.SetDefault("artwork.enabled", true)
	viper.SetDefault("artwork.padding", 15)
	viper.SetDefault("artwork.width_pixels", 300)
	viper.SetDefault("artwork.width_columns", 13)
	viper.SetDefault("text.max_length_with_art", 22)
	viper.SetDefault("text.max_length_no_art", 36)
	viper.SetDefault("timing.ui_refresh_ms", 100)
	viper.SetDefault("timing.data_fetch_ms", 1000)

	// Set config file location following XDG standard
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Check XDG_CONFIG_HOME first, fallback to ~/.config
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			configHome = filepath.Join(homeDir, ".config")
		}
	}

	if configHome != "" {
		viper.AddConfigPath(filepath.Join(configHome, "nowplaying"))
	}

	// Environment variable support with NOWPLAYING_ prefix
	viper.SetEnvPrefix("NOWPLAYING")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (ignore error if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file found but had errors
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	// Bind command-line flags (they take precedence)
	if colorFlag != "2" { // Only override if flag was explicitly set
		viper.Set("ui.color", colorFlag)
	}
	if noArtworkFlag {
		viper.Set("artwork.enabled", false)
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error parsing config: %v\n", err)
	}
	for _, err := range validateConfig(&cfg) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	config.Set(cfg)

	// Watch for config file changes and live reload
	viper.OnConfigChange(func(e fsnotify.Event) {
		var newCfg Config
		if err := viper.Unmarshal(&newCfg); err == nil && len(validateConfig(&newCfg)) == 0 {
			config.Set(newCfg)
			// Config reloaded successfully, notify the app
			select {
			case configChangeChan <- struct{}{}:
			default:
				// Channel full, skip notification
			}
		}
	})
	viper.WatchConfig()
}
