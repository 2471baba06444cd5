package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantTheme *Theme
		wantError bool
	}{
		{name: "default theme", themeName: "default", wantTheme: defaultTheme},
		{name: "dark theme", themeName: "dark", wantTheme: darkTheme},
		{name: "light theme", themeName: "light", wantTheme: lightTheme},
		{name: "nonexistent theme", themeName: "nonexistent", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Get(tt.themeName)
			if (err != nil) != tt.wantError {
				t.Fatalf("Get(%q) error = %v, wantError %v", tt.themeName, err, tt.wantError)
			}
			if got != tt.wantTheme {
				t.Errorf("Get(%q) = %v, want %v", tt.themeName, got, tt.wantTheme)
			}
		})
	}
}

func TestLoadAndCurrent(t *testing.T) {
	current = nil
	t.Cleanup(func() { current = nil })

	if got := Current(); got != defaultTheme {
		t.Errorf("Current() with nothing loaded = %v, want defaultTheme", got)
	}

	if err := Load("dark"); err != nil {
		t.Fatalf("Load(\"dark\") failed: %v", err)
	}
	if got := Current(); got != darkTheme {
		t.Errorf("after Load(\"dark\"), Current() = %v, want darkTheme", got)
	}

	if err := Load("nonexistent"); err == nil {
		t.Error("Load(\"nonexistent\") expected an error")
	}
}

func TestAvailable(t *testing.T) {
	got := Available()
	want := []string{"dark", "default", "light"}
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Available()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSeverityColor(t *testing.T) {
	th := defaultTheme
	if got := th.SeverityColor(true); got != th.Error {
		t.Errorf("SeverityColor(true) = %v, want Error color %v", got, th.Error)
	}
	if got := th.SeverityColor(false); got != th.Warning {
		t.Errorf("SeverityColor(false) = %v, want Warning color %v", got, th.Warning)
	}
	var _ lipgloss.Color = th.Primary
}
