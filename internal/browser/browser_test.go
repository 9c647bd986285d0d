package browser

import (
	"runtime"
	"strings"
	"testing"
)

func TestOpenRejectsUnsafeLinks(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{"empty link", ""},
		{"javascript scheme", "javascript:alert(1)"},
		{"file scheme", "file:///etc/passwd"},
		{"missing scheme", "example.com/story"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Open(tt.link); err == nil {
				t.Errorf("Open(%q) should refuse the link", tt.link)
			}
		})
	}
}

func TestOpenCommand(t *testing.T) {
	cmd := openCommand("https://example.com")
	if cmd == nil {
		t.Fatal("openCommand returned nil")
	}

	expected := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"windows": "rundll32",
	}
	if want, ok := expected[runtime.GOOS]; ok {
		if !strings.Contains(cmd.Path, want) && (len(cmd.Args) == 0 || cmd.Args[0] != want) {
			t.Errorf("openCommand uses %v, want %s for %s", cmd.Args, want, runtime.GOOS)
		}
	}

	found := false
	for _, arg := range cmd.Args {
		if arg == "https://example.com" {
			found = true
		}
	}
	if !found {
		t.Error("openCommand should pass the link through as an argument")
	}
}
