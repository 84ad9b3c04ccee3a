package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
	if got := Truncate("€€€€", 2); got != "€€..." {
		t.Errorf("multi-byte runes: got %s", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  Nvidia   beats\n\testimates ", "Nvidia beats estimates"},
		{"single", "single"},
	}
	for _, tt := range tests {
		if got := CollapseSpace(tt.in); got != tt.want {
			t.Errorf("CollapseSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrDefault(t *testing.T) {
	if OrDefault("", "N/A") != "N/A" || OrDefault("  ", "N/A") != "N/A" {
		t.Error("blank should return default")
	}
	if OrDefault("Tech", "N/A") != "Tech" {
		t.Error("non-blank should be returned unchanged")
	}
}
