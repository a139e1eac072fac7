package main

import (
	"testing"

	"github.com/albums1001/albums/internal/config"
)

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"top-n":             "top-n",
		"top_n":             "top-n",
		"TOP_N":             "top-n",
		"Layout_Iterations": "layout-iterations",
	}
	for in, want := range tests {
		if got := normalizeKey(in); got != want {
			t.Errorf("normalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigKeys_SetAndGet(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"top-n", "12"},
		{"layout-k", "0.25"},
		{"layout-iterations", "80"},
		{"layout-seed", "7"},
		{"album-size", "14"},
		{"album-highlight-color", "#ff0000"},
		{"person-colour", "#222222"},
		{"connection-lowlight-colour", "#eeeeee"},
		{"colour-producer", "#00ff00"},
		{"colour-engineer", "#123456"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := config.Default()
			k, ok := lookupConfigKey(tt.key)
			if !ok {
				t.Fatalf("lookupConfigKey(%q) not found", tt.key)
			}
			if err := k.set(&cfg.Network, tt.value); err != nil {
				t.Fatalf("set(%q) error = %v", tt.value, err)
			}
			if got := k.get(&cfg.Network); got != tt.value {
				t.Errorf("get() = %q, want %q", got, tt.value)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestConfigKeys_RejectsBadValues(t *testing.T) {
	cfg := config.Default()
	for _, key := range []string{"top-n", "layout-k", "layout-seed", "album-size"} {
		k, _ := lookupConfigKey(key)
		if err := k.set(&cfg.Network, "lots"); err == nil {
			t.Errorf("set(%s, lots) should fail", key)
		}
	}
}

func TestLookupConfigKey_Unknown(t *testing.T) {
	for _, key := range []string{"pdf-root", "colour-", ""} {
		if _, ok := lookupConfigKey(key); ok {
			t.Errorf("lookupConfigKey(%q) should not be found", key)
		}
	}
}

func TestConfigValues(t *testing.T) {
	cfg := config.Default()
	values := configValues(&cfg.Network)

	if values["top-n"] != "30" {
		t.Errorf("top-n = %q, want 30", values["top-n"])
	}
	for role, c := range cfg.Network.ConnectionColourmap {
		if values["colour-"+role] != c {
			t.Errorf("colour-%s = %q, want %q", role, values["colour-"+role], c)
		}
	}
}

func TestResolveLimit(t *testing.T) {
	if got := resolveLimit(-1, 30); got != 30 {
		t.Errorf("resolveLimit(-1, 30) = %d, want 30", got)
	}
	if got := resolveLimit(0, 30); got != 0 {
		t.Errorf("resolveLimit(0, 30) = %d, want 0", got)
	}
	if got := resolveLimit(5, 30); got != 5 {
		t.Errorf("resolveLimit(5, 30) = %d, want 5", got)
	}
}
