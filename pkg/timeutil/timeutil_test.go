package timeutil

import "testing"

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name   string
		ms     int64
		subsec bool
		want   string
	}{
		{"zero", 0, false, "0:00"},
		{"minute and seconds", 65000, false, "1:05"},
		{"over an hour", 3_661_000, false, "1:01:01"},
		{"subsecond", 1500, true, "0:01.500"},
		{"subsecond padding", 61_007, true, "1:01.007"},
		{"just under an hour", 3_599_999, false, "59:59"},
		{"hours with subsecond", 36_000_042, true, "10:00:00.042"},
		{"negative clamps", -20, false, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.ms, tt.subsec); got != tt.want {
				t.Errorf("FormatTime(%d, %v) = %q, want %q", tt.ms, tt.subsec, got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0.000"},
		{12345, "12.345"},
		{1000, "1.000"},
		{7, "0.007"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSeconds(tt.ms); got != tt.want {
				t.Errorf("FormatSeconds(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}
