package main

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	playerctl "github.com/FliegendeWurst/go-playerctl"
)

// songData holds the fields rendered for the selected player.
type songData struct {
	Player    string
	Title     string
	Artist    string
	Album     string
	Status    playerctl.TrackStatus
	ArtURL    string
	TotalTime string
}

// model is the Bubble Tea model for the TUI application
type model struct {
	client *playerctl.Client
	logger *zap.Logger

	song           songData
	metadata       map[string]playerctl.PlayerMetadata
	players        []string // sorted player names from the last fetch
	selected       string   // player currently displayed
	nothingPlaying bool
	lastError      error

	color  string
	width  int
	height int

	// For smooth position interpolation
	lastPosition     float64   // Last known position in seconds
	lastPositionTime time.Time // When we fetched that position
	duration         int64     // Track duration in seconds
	isPlaying        bool      // Whether song is currently playing

	// Album artwork support
	artworkEncoded string // Kitty protocol-encoded artwork for display
	supportsKitty  bool   // Whether terminal supports Kitty graphics
	lastTrackKey   string // Player+track key for caching artwork

	// Text scrolling state
	scrollOffset int // Current scroll position for text animation
	scrollPause  int // Pause counter at start/end of scroll
	scrollTick   int // Tick counter for slowing scroll speed

	// UI state
	showHelp bool
}

// UI refresh tick - fires frequently for smooth rendering
type tickMsg time.Time

// Data fetch tick - fires every second to get fresh metadata
type fetchMsg time.Time

// Result of querying playerctl
type songDataMsg struct {
	players  map[string]playerctl.PlayerMetadata
	status   playerctl.TrackStatus
	position float64
	err      error
}

// Result of fetching and encoding album artwork
type artworkMsg struct {
	trackKey string
	encoded  string
	color    string
}

// Schedule next UI refresh tick
func tickCmd() tea.Cmd {
	cfg := config.Get()
	return tea.Tick(time.Duration(cfg.Timing.UIRefreshMs)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Schedule next data fetch
func fetchCmd() tea.Cmd {
	cfg := config.Get()
	return tea.Tick(time.Duration(cfg.Timing.DataFetchMs)*time.Millisecond, func(t time.Time) tea.Msg {
		return fetchMsg(t)
	})
}

// Fetch player data in background (doesn't block UI)
func (m model) fetchSongData() tea.Cmd {
	client := m.client
	logger := m.logger
	return func() tea.Msg {
		players, err := client.Metadata()
		if err != nil {
			logger.Warn("metadata query failed", zap.Error(err))
			return songDataMsg{err: err}
		}
		if len(players) == 0 {
			return songDataMsg{players: players}
		}

		status, err := client.Status()
		if err != nil {
			logger.Warn("status query failed", zap.Error(err))
			return songDataMsg{err: err}
		}

		// Position is unavailable for stopped players; fall back to
		// zero rather than dropping the whole update.
		position, err := client.CurrentPosition()
		if err != nil {
			logger.Debug("position query failed", zap.Error(err))
			position = 0
		}

		return songDataMsg{players: players, status: status, position: position}
	}
}

// Fetch and encode artwork in background
func (m model) fetchArtworkCmd(trackKey, artURL string) tea.Cmd {
	logger := m.logger
	extractColor := config.Get().UI.ColorMode == "auto"
	return func() tea.Msg {
		data, err := fetchArtwork(artURL)
		if err != nil {
			logger.Debug("artwork fetch failed", zap.String("url", artURL), zap.Error(err))
			return artworkMsg{trackKey: trackKey}
		}
		color, encoded, err := processArtwork(data, extractColor)
		if err != nil {
			logger.Debug("artwork processing failed", zap.Error(err))
			return artworkMsg{trackKey: trackKey}
		}
		return artworkMsg{trackKey: trackKey, encoded: encoded, color: color}
	}
}

// strOr dereferences an optional metadata field.
func strOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

// applySelection rebuilds the display fields from the cached metadata
// of the selected player and returns an artwork fetch command when the
// track changed.
func (m model) applySelection() (model, tea.Cmd) {
	meta, ok := m.metadata[m.selected]
	if !ok {
		return m, nil
	}

	m.song = songData{
		Player: m.selected,
		Title:  strOr(meta.Title, ""),
		Artist: strOr(meta.Artist, ""),
		Album:  strOr(meta.Album, ""),
		ArtURL: strOr(meta.ArtURL, ""),
		Status: m.song.Status,
	}
	if secs, ok := meta.LengthSeconds(); ok {
		m.duration = secs
		m.song.TotalTime = formatTime(secs)
	} else {
		m.duration = 0
		m.song.TotalTime = ""
	}

	trackKey := m.selected + "\x00" + m.song.Title + "\x00" + m.song.Artist
	if trackKey == m.lastTrackKey {
		return m, nil
	}
	m.lastTrackKey = trackKey
	m.scrollOffset = 0
	m.scrollPause = 30 // Pause at start for 3 seconds
	m.scrollTick = 0
	m.artworkEncoded = ""

	cfg := config.Get()
	if m.supportsKitty && cfg.Artwork.Enabled && m.song.ArtURL != "" {
		return m, m.fetchArtworkCmd(trackKey, m.song.ArtURL)
	}
	return m, nil
}

// Calculate current position with smooth interpolation
func (m model) getCurrentPosition() float64 {
	// If paused, return last known position
	if !m.isPlaying {
		return m.lastPosition
	}

	// If playing, interpolate based on elapsed time since last fetch
	elapsed := time.Since(m.lastPositionTime).Seconds()
	currentPos := m.lastPosition + elapsed

	// Clamp to duration
	if m.duration > 0 && currentPos > float64(m.duration) {
		currentPos = float64(m.duration)
	}

	return currentPos
}

// control runs a playback action and schedules an immediate refresh so
// the UI reflects the result without waiting for the next fetch tick.
func (m model) control(name string, action func() error) (model, tea.Cmd) {
	if err := action(); err != nil && !playerctl.IsNoPlayerRunning(err) {
		m.logger.Warn("control action failed", zap.String("action", name), zap.Error(err))
		m.lastError = err
	}
	return m, m.fetchSongData()
}

func (m model) Init() tea.Cmd {
	// Start the UI refresh loop, the data fetch loop and the config watcher
	return tea.Batch(
		tickCmd(),
		fetchCmd(),
		m.fetchSongData(),
		watchConfigCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			return m.control("play-pause", m.client.PlayPause)
		case "s":
			return m.control("stop", m.client.Stop)
		case "n":
			return m.control("next", m.client.Next)
		case "b":
			return m.control("previous", m.client.Previous)
		case "left":
			return m.control("seek back", func() error { return m.client.Position(-5) })
		case "right":
			return m.control("seek forward", func() error { return m.client.Position(5) })
		case "+", "=":
			return m.control("volume up", func() error { return m.client.Volume(0.05) })
		case "-":
			return m.control("volume down", func() error { return m.client.Volume(-0.05) })
		case "tab":
			// Cycle through active players
			if len(m.players) > 1 {
				for i, name := range m.players {
					if name == m.selected {
						m.selected = m.players[(i+1)%len(m.players)]
						break
					}
				}
				return m.applySelection()
			}
			return m, nil
		case "a":
			// Toggle artwork on/off
			cfg := config.Get()
			cfg.Artwork.Enabled = !cfg.Artwork.Enabled
			config.Set(cfg)
			if !cfg.Artwork.Enabled {
				m.artworkEncoded = ""
			} else if m.supportsKitty {
				m.lastTrackKey = "" // Force artwork refetch
				return m.applySelection()
			}
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case configReloadMsg:
		// Config file changed; pick up color and artwork settings
		cfg := config.Get()
		if cfg.UI.ColorMode == "manual" {
			m.color = cfg.UI.Color
		}
		if !cfg.Artwork.Enabled && m.artworkEncoded != "" {
			m.artworkEncoded = ""
			m.lastTrackKey = ""
		} else if cfg.Artwork.Enabled && m.artworkEncoded == "" && m.supportsKitty {
			m.lastTrackKey = ""
			var cmd tea.Cmd
			m, cmd = m.applySelection()
			return m, tea.Batch(watchConfigCmd(), cmd)
		}
		// Continue watching for more config changes
		return m, watchConfigCmd()

	case tickMsg:
		// UI refresh tick - advance scroll animation slowly
		m.scrollTick++
		if m.scrollPause > 0 {
			m.scrollPause--
		} else if m.scrollTick%3 == 0 { // Scroll every 3rd tick
			m.scrollOffset++

			cfg := config.Get()
			maxLen := cfg.Text.MaxLengthWithArt
			if !m.supportsKitty || !cfg.Artwork.Enabled {
				maxLen = cfg.Text.MaxLengthNoArt
			}

			// Longest field determines the loop point
			longestLen := len([]rune(m.song.Title))
			if l := len([]rune(m.song.Artist)); l > longestLen {
				longestLen = l
			}
			if l := len([]rune(m.song.Album)); l > longestLen {
				longestLen = l
			}

			if longestLen > maxLen {
				loopPoint := longestLen + 5 // Text length + separator length
				if m.scrollOffset >= loopPoint {
					m.scrollOffset = 0
					m.scrollPause = 30 // Pause when looping back
				}
			}
		}
		// Schedule next tick immediately for consistent timing
		return m, tickCmd()

	case fetchMsg:
		// Data fetch tick - get fresh data and schedule next fetch
		return m, tea.Batch(
			fetchCmd(),
			m.fetchSongData(),
		)

	case songDataMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.nothingPlaying = playerctl.IsNoPlayerRunning(msg.err)
			m.artworkEncoded = ""
			m.lastTrackKey = ""
			return m, nil
		}
		m.lastError = nil

		if len(msg.players) == 0 {
			m.nothingPlaying = true
			m.metadata = nil
			m.players = nil
			m.selected = ""
			m.artworkEncoded = ""
			m.lastTrackKey = ""
			return m, nil
		}
		m.nothingPlaying = false

		m.metadata = msg.players
		m.players = make([]string, 0, len(msg.players))
		for name := range msg.players {
			m.players = append(m.players, name)
		}
		sort.Strings(m.players)
		if _, ok := msg.players[m.selected]; !ok {
			m.selected = m.players[0]
		}

		m.song.Status = msg.status
		m.isPlaying = msg.status == playerctl.StatusPlaying
		m.lastPosition = msg.position
		m.lastPositionTime = time.Now()

		return m.applySelection()

	case artworkMsg:
		// Ignore stale results for a track we moved away from
		if msg.trackKey == m.lastTrackKey && msg.encoded != "" {
			m.artworkEncoded = msg.encoded
			if config.Get().UI.ColorMode == "auto" && msg.color != "" {
				m.color = msg.color
			}
		}
		return m, nil
	}

	return m, nil
}
