package utils

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "Unknown"},
		{-5, "Unknown"},
		{42, "0:42"},
		{75, "1:15"},
		{212, "3:32"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatSizeMB(t *testing.T) {
	tests := []struct {
		mb   float64
		want string
	}{
		{0.5, "512.0 KB"},
		{8, "8.0 MB"},
		{20.25, "20.2 MB"},
		{2048, "2.00 GB"},
	}

	for _, tt := range tests {
		if got := FormatSizeMB(tt.mb); got != tt.want {
			t.Errorf("FormatSizeMB(%v) = %q, want %q", tt.mb, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		b    uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.b); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.b, got, tt.want)
		}
	}
}
