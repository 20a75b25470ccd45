package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	playerctl "github.com/FliegendeWurst/go-playerctl"
)

func (m model) View() string {
	// Get config snapshot for rendering
	cfg := config.Get()

	// Calculate current interpolated position for smooth progress bar
	currentPos := m.getCurrentPosition()
	currentTime := formatTime(int64(currentPos))
	var progress float64
	if m.duration > 0 {
		progress = currentPos / float64(m.duration)
	}

	// Use lipgloss.Color to validate the color input
	color := lipgloss.Color(m.color)
	highlight := lipgloss.NewStyle().Foreground(color)
	white := lipgloss.NewStyle().Foreground(lipgloss.Color("15")) // ANSI white

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(1, 2)

	labelStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	var textContent strings.Builder
	var progressBarContent string

	switch {
	case m.nothingPlaying:
		textContent.WriteString(highlight.Render("Now Playing") + "\n\n")
		textContent.WriteString(mutedStyle.Render("Nothing playing") + "\n\n")
		textContent.WriteString(dimStyle.Render("Start playing music to begin"))

	case m.lastError != nil:
		textContent.WriteString(errorStyle.Render("Error: " + m.lastError.Error()))

	default:
		header := "Now Playing"
		if len(m.players) > 1 {
			for i, name := range m.players {
				if name == m.selected {
					header = fmt.Sprintf("Now Playing - %s (%d/%d)", name, i+1, len(m.players))
					break
				}
			}
		} else {
			header = "Now Playing - " + m.song.Player
		}
		textContent.WriteString(highlight.Render(header) + "\n\n")

		addLine := func(label, value string) {
			if value != "" {
				textContent.WriteString(
					fmt.Sprintf("%s %s\n",
						labelStyle.Render(label),
						value,
					),
				)
			}
		}

		// Calculate max length for text
		maxLen := cfg.Text.MaxLengthWithArt
		if !m.supportsKitty || !cfg.Artwork.Enabled {
			maxLen = cfg.Text.MaxLengthNoArt
		}

		addLine("Title: ", scrollText(m.song.Title, maxLen, m.scrollOffset))
		addLine("Artist:", scrollText(m.song.Artist, maxLen, m.scrollOffset))
		addLine("Album: ", scrollText(m.song.Album, maxLen, m.scrollOffset))

		statusLabel := "Status:"
		statusText := string(m.song.Status)
		if m.song.Status == playerctl.StatusPaused {
			statusText = mutedStyle.Render(statusText)
		}
		addLine(statusLabel, statusText)

		if progress > 0 && m.song.TotalTime != "" {
			// Progress bar with smooth interpolated position
			// Bar width calculated from max_width, leaving room for timestamps
			barWidth := cfg.UI.MaxWidth - 17
			filled := int(float64(barWidth) * progress)
			if filled > barWidth {
				filled = barWidth
			}
			progressBar := highlight.Render(strings.Repeat("█", filled)) +
				white.Render(strings.Repeat("─", barWidth-filled))

			progressBarContent = fmt.Sprintf(
				"\n%s %s/%s",
				progressBar,
				highlight.Render(currentTime),
				highlight.Render(m.song.TotalTime),
			)
		}
	}

	// Combine artwork and text content
	var topSection string
	if m.artworkEncoded != "" && m.supportsKitty && cfg.Artwork.Enabled {
		// Add padding to the left of text to make room for the image
		paddedText := lipgloss.NewStyle().
			PaddingLeft(cfg.Artwork.Padding).
			Render(textContent.String())

		topSection = m.artworkEncoded + paddedText
	} else {
		// No artwork - delete any stale image and show content without padding
		if m.supportsKitty {
			topSection = kittyDeleteAll + textContent.String()
		} else {
			topSection = textContent.String()
		}
	}

	// Add progress bar below everything
	mainContent := topSection
	if progressBarContent != "" {
		mainContent = topSection + progressBarContent
	}

	contentStr := borderStyle.
		Width(cfg.UI.MaxWidth).
		Render(mainContent)

	// Build help text - either full help or hint to press ?
	var helpText string
	if m.showHelp {
		helpText = lipgloss.NewStyle().
			Width(cfg.UI.MaxWidth).
			Align(lipgloss.Center).
			Render(lipgloss.JoinHorizontal(
				lipgloss.Center,
				"Play/Pause: "+highlight.Render("p"),
				"  Stop: "+highlight.Render("s"),
				"  Next: "+highlight.Render("n"),
				"  Prev: "+highlight.Render("b"),
				"  Seek: "+highlight.Render("←/→"),
				"  Vol: "+highlight.Render("+/-"),
				"  Player: "+highlight.Render("tab"),
				"  Art: "+highlight.Render("a"),
				"  Quit: "+highlight.Render("q"),
			))
	} else {
		helpText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Render("Press ? for help")
	}

	fullUI := lipgloss.JoinVertical(lipgloss.Center, contentStr, "\n"+helpText)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		fullUI,
	)
}
