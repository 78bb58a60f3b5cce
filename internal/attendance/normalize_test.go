package attendance

import "testing"

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"excel serial 7.5 hours", "0.3125", "07:30"},
		{"excel serial midnight", "0", "00:00"},
		{"excel datetime serial keeps fraction", "45536.3125", "07:30"},
		{"text already padded", "07:30", "07:30"},
		{"text single digit hour", "7:30", "07:30"},
		{"text with seconds truncated", "07:30:15", "07:30"},
		{"text with whitespace", "  8:05  ", "08:05"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTime(tt.raw); got != tt.want {
				t.Errorf("NormalizeTime(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		override string
		want     string
	}{
		{"override wins over cell", "2025-01-01", "2025-09-07", "2025-09-07"},
		{"override wins over empty", "", "2025-09-07", "2025-09-07"},
		{"text date as written", " 2025-09-01 ", "", "2025-09-01"},
		{"serial date converted", "45901", "", "2025-09-01"},
		{"empty no date", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.raw, tt.override); got != tt.want {
				t.Errorf("NormalizeDate(%q, %q) = %q, want %q", tt.raw, tt.override, got, tt.want)
			}
		})
	}
}
