package main

import (
	"testing"
)

// TestFormatTime tests the formatTime function with various inputs
func TestFormatTime(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{"zero seconds", 0, "00:00"},
		{"under 10 seconds", 5, "00:05"},
		{"under one minute", 45, "00:45"},
		{"exactly one minute", 60, "01:00"},
		{"over one minute", 75, "01:15"},
		{"exactly 10 minutes", 600, "10:00"},
		{"under one hour", 3599, "59:59"},
		{"over one hour", 3661, "61:01"},
		{"multiple hours", 7384, "123:04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatTime(tt.seconds)
			if result != tt.expected {
				t.Errorf("formatTime(%d) = %q; want %q", tt.seconds, result, tt.expected)
			}
		})
	}
}

// TestScrollText tests the scrollText function with various inputs
func TestScrollText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		offset    int
		expected  string
	}{
		{
			name:      "short text no scroll",
			text:      "Short",
			maxLength: 10,
			offset:    0,
			expected:  "Short",
		},
		{
			name:      "exact length no scroll",
			text:      "ExactlyTen",
			maxLength: 10,
			offset:    0,
			expected:  "ExactlyTen",
		},
		{
			name:      "long text offset 0",
			text:      "This is a very long text that needs scrolling",
			maxLength: 20,
			offset:    0,
			expected:  "This is a very long ",
		},
		{
			name:      "long text offset middle",
			text:      "This is a very long text that needs scrolling",
			maxLength: 20,
			offset:    5,
			expected:  "is a very long text ",
		},
		{
			name:      "long text offset near end",
			text:      "This is a very long text that needs scrolling",
			maxLength: 20,
			offset:    30,
			expected:  "needs scrolling  •  ",
		},
		{
			name:      "unicode characters",
			text:      "Hello 世界 🎵 Music",
			maxLength: 10,
			offset:    0,
			expected:  "Hello 世界 🎵",
		},
		{
			name:      "empty text",
			text:      "",
			maxLength: 10,
			offset:    0,
			expected:  "",
		},
		{
			name:      "zero max length",
			text:      "Some text",
			maxLength: 0,
			offset:    0,
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scrollText(tt.text, tt.maxLength, tt.offset)
			if result != tt.expected {
				t.Errorf("scrollText(%q, %d, %d) = %q; want %q",
					tt.text, tt.maxLength, tt.offset, result, tt.expected)
			}
		})
	}
}

// TestScrollTextUnicodeSafety tests that scrollText handles multi-byte characters correctly
func TestScrollTextUnicodeSafety(t *testing.T) {
	text := "日本語テキスト"
	maxLength := 5

	// Scroll through entire text
	for offset := 0; offset < len([]rune(text))+10; offset++ {
		result := scrollText(text, maxLength, offset)

		resultRunes := []rune(result)
		if len(resultRunes) > maxLength {
			t.Errorf("Offset %d: scrollText result has %d runes, exceeds maxLength %d",
				offset, len(resultRunes), maxLength)
		}

		if string(resultRunes) != result {
			t.Errorf("Offset %d: scrollText result contains invalid UTF-8", offset)
		}
	}
}

// BenchmarkScrollText benchmarks the scrollText function
func BenchmarkScrollText(b *testing.B) {
	text := "This is a very long text that needs scrolling with multiple words"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scrollText(text, 20, 10)
	}
}
