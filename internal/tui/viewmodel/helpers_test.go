package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		want   string
		maxLen int
	}{
		{name: "short string", s: "Mara", maxLen: 10, want: "Mara"},
		{name: "exact length", s: "Lamu", maxLen: 4, want: "Lamu"},
		{name: "needs truncation", s: "Serengeti Lodge", maxLen: 8, want: "Seren..."},
		{name: "very short max", s: "Serengeti", maxLen: 3, want: "Ser"},
		{name: "multibyte runes", s: "Zürich Rückhalt", maxLen: 7, want: "Züri..."},
		{name: "empty string", s: "", maxLen: 10, want: ""},
		{name: "zero max length", s: "hello", maxLen: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.s, tt.maxLen))
		})
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		fraction float64
		width    int
	}{
		{name: "half", fraction: 0.5, width: 4, want: "██░░"},
		{name: "full", fraction: 1, width: 3, want: "███"},
		{name: "clamped above", fraction: 2, width: 2, want: "██"},
		{name: "clamped below", fraction: -1, width: 2, want: "░░"},
		{name: "tiny value still shows", fraction: 0.01, width: 5, want: "█░░░░"},
		{name: "zero width", fraction: 0.5, width: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bar(tt.fraction, tt.width))
		})
	}
}

func TestSanitizeForDisplay(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{name: "normal string", s: "Mara Camp", want: "Mara Camp"},
		{name: "control characters", s: "Mara\x00\x01Camp", want: "Mara Camp"},
		{name: "newlines removed", s: "Mara\nCamp", want: "Mara Camp"},
		{name: "tabs converted to single space", s: "Mara\tCamp", want: "Mara Camp"},
		{name: "multiple spaces collapsed", s: "Mara    Camp", want: "Mara Camp"},
		{name: "only whitespace", s: "   \n\t  ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeForDisplay(tt.s))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		want string
		d    time.Duration
	}{
		{name: "seconds only", d: 30 * time.Second, want: "30s"},
		{name: "exactly one minute", d: time.Minute, want: "1m"},
		{name: "minutes and seconds", d: 90 * time.Second, want: "1m 30s"},
		{name: "exactly one hour", d: time.Hour, want: "1h"},
		{name: "hours and minutes", d: 75 * time.Minute, want: "1h 15m"},
		{name: "zero duration", d: 0, want: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "never", Age(time.Time{}, now))
	assert.Equal(t, "just now", Age(now.Add(-20*time.Second), now))
	assert.Equal(t, "5m ago", Age(now.Add(-5*time.Minute-10*time.Second), now))
	assert.Equal(t, "2h ago", Age(now.Add(-2*time.Hour), now))
}
