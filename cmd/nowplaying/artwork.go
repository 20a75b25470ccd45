package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// kittyDeleteAll clears every image placement, not just ours, so stale
// placements from a previous track disappear.
const kittyDeleteAll = "\033_Ga=d,d=A\033\\"

const kittyImageID = 42

// fetchArtwork loads cover art from the URL playerctl reports in
// mpris:artUrl. Players hand out either local file:// paths or
// http(s):// URLs.
func fetchArtwork(artURL string) ([]byte, error) {
	switch {
	case strings.HasPrefix(artURL, "file://"):
		data, err := os.ReadFile(strings.TrimPrefix(artURL, "file://"))
		if err != nil {
			return nil, fmt.Errorf("failed to read artwork file: %w", err)
		}
		return data, nil

	case strings.HasPrefix(artURL, "http://"), strings.HasPrefix(artURL, "https://"):
		resp, err := http.Get(artURL)
		if err != nil {
			return nil, fmt.Errorf("failed to download artwork: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("artwork download failed with status: %d", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read artwork data: %w", err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("unsupported artwork URL scheme: %s", artURL)
	}
}

// decodeArtworkData decodes raw or base64-encoded image data. Some
// players expose base64 payloads instead of plain bytes.
func decodeArtworkData(imgData []byte) (image.Image, error) {
	imageData := imgData
	if decoded, err := base64.StdEncoding.DecodeString(string(imgData)); err == nil {
		imageData = decoded
	}

	if len(imageData) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return img, nil
}

// extractDominantColor picks a hex color from the artwork to theme the
// UI with. K-means clusters are checked for readability on a dark
// background; if none qualifies the biggest cluster wins.
func extractDominantColor(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	colors, err := prominentcolor.Kmeans(img)
	if err != nil || len(colors) == 0 {
		return "", fmt.Errorf("no suitable colors found")
	}

	for _, c := range colors {
		if readableOnDark(c.Color) {
			return fmt.Sprintf("#%02x%02x%02x", c.Color.R, c.Color.G, c.Color.B), nil
		}
	}

	c := colors[0].Color
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}

// readableOnDark reports whether a color is light and saturated enough
// to be legible as foreground text on a dark terminal.
func readableOnDark(c prominentcolor.ColorRGB) bool {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	max := rf
	if gf > max {
		max = gf
	}
	if bf > max {
		max = bf
	}
	min := rf
	if gf < min {
		min = gf
	}
	if bf < min {
		min = bf
	}

	lightness := (max + min) / 2.0
	var saturation float64
	if max != min {
		if lightness > 0.5 {
			saturation = (max - min) / (2.0 - max - min)
		} else {
			saturation = (max - min) / (max + min)
		}
	}

	return lightness >= 0.3 && lightness <= 0.85 && saturation >= 0.25
}

// Check if terminal supports Kitty graphics protocol
func supportsKittyGraphics() bool {
	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	if strings.Contains(term, "kitty") || strings.Contains(term, "konsole") {
		return true
	}

	// Check TERM_PROGRAM for Ghostty and other terminals
	if termProgram == "ghostty" || termProgram == "WezTerm" {
		return true
	}

	return false
}

// encodeArtworkForKitty resizes the artwork and encodes it as Kitty
// graphics protocol escape sequences. Payloads over 4096 bytes are
// chunked as the protocol requires.
func encodeArtworkForKitty(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}

	cfg := config.Get()

	// Height is auto-calculated by the terminal to keep aspect ratio
	resized := resize.Resize(uint(cfg.Artwork.WidthPixels), 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	const chunkSize = 4096
	var result strings.Builder

	// Drop any previous placement of our image first
	result.WriteString(fmt.Sprintf("\033_Ga=d,d=I,i=%d\033\\", kittyImageID))

	for i := 0; i < len(encoded); i += chunkSize {
		end := i + chunkSize
		if end > len(encoded) {
			end = len(encoded)
		}
		chunk := encoded[i:end]

		more := 0
		if end < len(encoded) {
			more = 1
		}

		if i == 0 {
			// Columns-based sizing is zoom-independent; height follows
			// the aspect ratio
			result.WriteString(fmt.Sprintf("\033_Ga=T,f=100,t=d,i=%d,c=%d,C=1,m=%d;%s\033\\",
				kittyImageID, cfg.Artwork.WidthColumns, more, chunk))
		} else {
			result.WriteString(fmt.Sprintf("\033_Gm=%d;%s\033\\", more, chunk))
		}
	}

	return result.String(), nil
}

// processArtwork decodes artwork data once and returns both the
// extracted color and the Kitty-encoded string, avoiding a second
// decode of the same image.
func processArtwork(artworkData []byte, extractColor bool) (color string, encoded string, err error) {
	img, err := decodeArtworkData(artworkData)
	if err != nil {
		return "", "", err
	}

	if extractColor {
		if c, err := extractDominantColor(img); err == nil && c != "" {
			color = c
		}
	}

	encoded, err = encodeArtworkForKitty(img)
	if err != nil {
		return color, "", err
	}

	return color, encoded, nil
}
