// Package config handles library and global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/albums1001/albums/internal/album"
	"github.com/albums1001/albums/internal/network"
	"gopkg.in/yaml.v3"
)

// Config represents library configuration stored in .albums/config.yml.
type Config struct {
	Network NetworkConfig `yaml:"network"`
}

// NetworkConfig holds the network graph's styling, layout and chart settings.
type NetworkConfig struct {
	AlbumSymbol                   string  `yaml:"album_symbol"`
	AlbumSize                     float64 `yaml:"album_size"`
	AlbumHighlightColor           string  `yaml:"album_highlight_color"`
	AlbumHighlightSize            float64 `yaml:"album_highlight_size"`
	AlbumHighlightConnectionColor string  `yaml:"album_highlight_connection_color"`
	AlbumLowlightColor            string  `yaml:"album_lowlight_color"`
	AlbumLowlightSize             float64 `yaml:"album_lowlight_size"`

	PersonSymbol        string  `yaml:"person_symbol"`
	PersonColour        string  `yaml:"person_colour"`
	PersonSize          float64 `yaml:"person_size"`
	PersonHighlightSize float64 `yaml:"person_highlight_size"`

	ConnectionColourmap      map[string]string `yaml:"connection_colourmap"`
	ConnectionDefaultColour  string            `yaml:"connection_default_colour"`
	ConnectionLowlightColour string            `yaml:"connection_lowlight_colour"`

	Layout LayoutConfig `yaml:"layout"`
	TopN   int          `yaml:"top_n"`
}

// LayoutConfig holds the spring layout parameters.
type LayoutConfig struct {
	K          float64 `yaml:"k"`
	Iterations int     `yaml:"iterations"`
	Seed       int64   `yaml:"seed"`
}

const (
	AlbumsDir    = ".albums"
	ConfigFile   = "config.yml"
	AlbumsFile   = "albums.jsonl"
	CacheDir     = "cache"
	DBFile       = "albums.db"
	DefaultTopN  = network.DefaultTopN
	defaultScale = 1
)

// AlbumsDirPath returns the path to the .albums directory from a root path.
func AlbumsDirPath(root string) string {
	return filepath.Join(root, AlbumsDir)
}

// ConfigPath returns the path to config.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, AlbumsDir, ConfigFile)
}

// AlbumsPath returns the path to albums.jsonl from a root path.
func AlbumsPath(root string) string {
	return filepath.Join(root, AlbumsDir, AlbumsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, AlbumsDir, CacheDir)
}

// DBPath returns the path to albums.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, AlbumsDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains an album library.
func IsRepository(root string) bool {
	info, err := os.Stat(AlbumsDirPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find an album library.
// Returns the library root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in an album library (no %s directory found)", AlbumsDir)
		}
		abs = parent
	}
}

// Default returns the stock configuration.
func Default() *Config {
	p := network.DefaultPalette()
	l := network.DefaultLayoutParams()

	colourmap := make(map[string]string, len(p.RoleColors))
	for role, c := range p.RoleColors {
		colourmap[string(role)] = c
	}

	return &Config{Network: NetworkConfig{
		AlbumSymbol:                   p.AlbumSymbol,
		AlbumSize:                     p.AlbumSize,
		AlbumHighlightColor:           p.AlbumHighlightColor,
		AlbumHighlightSize:            p.AlbumHighlightSize,
		AlbumHighlightConnectionColor: p.AlbumHighlightConnectionColor,
		AlbumLowlightColor:            p.AlbumLowlightColor,
		AlbumLowlightSize:             p.AlbumLowlightSize,

		PersonSymbol:        p.GroupSymbol,
		PersonColour:        p.GroupColor,
		PersonSize:          p.GroupSize,
		PersonHighlightSize: p.GroupHighlightSize,

		ConnectionColourmap:      colourmap,
		ConnectionDefaultColour:  p.ConnectionDefaultColor,
		ConnectionLowlightColour: p.ConnectionLowlightColor,

		Layout: LayoutConfig{K: l.K, Iterations: l.Iterations, Seed: l.Seed},
		TopN:   DefaultTopN,
	}}
}

// Load reads configuration from the library at the given root. A missing
// file yields Default(); keys absent from the file keep their defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	defaults := cfg.Network.ConnectionColourmap
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Network.ConnectionColourmap == nil {
		cfg.Network.ConnectionColourmap = make(map[string]string)
	}
	for role, c := range defaults {
		if _, ok := cfg.Network.ConnectionColourmap[role]; !ok {
			cfg.Network.ConnectionColourmap[role] = c
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to the library at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks that sizes and layout settings are usable.
func (c *Config) Validate() error {
	n := c.Network
	for name, v := range map[string]float64{
		"album_size":            n.AlbumSize,
		"album_highlight_size":  n.AlbumHighlightSize,
		"album_lowlight_size":   n.AlbumLowlightSize,
		"person_size":           n.PersonSize,
		"person_highlight_size": n.PersonHighlightSize,
	} {
		if v <= 0 {
			return fmt.Errorf("invalid %s: %v (must be positive)", name, v)
		}
	}
	if n.Layout.Iterations < 0 {
		return fmt.Errorf("invalid layout.iterations: %d (must not be negative)", n.Layout.Iterations)
	}
	if n.Layout.K < 0 {
		return fmt.Errorf("invalid layout.k: %v (must not be negative)", n.Layout.K)
	}
	if n.TopN < 0 {
		return fmt.Errorf("invalid top_n: %d (must not be negative)", n.TopN)
	}
	return nil
}

// Palette converts the network settings into a highlight palette.
func (c *Config) Palette() network.Palette {
	n := c.Network
	p := network.DefaultPalette()

	p.AlbumSymbol = n.AlbumSymbol
	p.AlbumSize = n.AlbumSize
	p.AlbumHighlightColor = n.AlbumHighlightColor
	p.AlbumHighlightSize = n.AlbumHighlightSize
	p.AlbumHighlightConnectionColor = n.AlbumHighlightConnectionColor
	p.AlbumLowlightColor = n.AlbumLowlightColor
	p.AlbumLowlightSize = n.AlbumLowlightSize

	p.GroupSymbol = n.PersonSymbol
	p.GroupColor = n.PersonColour
	p.GroupSize = n.PersonSize
	p.GroupHighlightSize = n.PersonHighlightSize

	p.RoleColors = make(map[album.Role]string, len(n.ConnectionColourmap))
	for role, c := range n.ConnectionColourmap {
		p.RoleColors[album.Role(role)] = c
	}
	p.ConnectionDefaultColor = n.ConnectionDefaultColour
	p.ConnectionLowlightColor = n.ConnectionLowlightColour
	return p
}

// LayoutParams converts the layout settings into network layout parameters.
func (c *Config) LayoutParams() network.LayoutParams {
	return network.LayoutParams{
		K:          c.Network.Layout.K,
		Iterations: c.Network.Layout.Iterations,
		Seed:       c.Network.Layout.Seed,
		Scale:      defaultScale,
	}
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
