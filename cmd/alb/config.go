package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/albums1001/albums/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set network configuration values in .albums/config.yml.

Usage:
  alb config                          # Show all config
  alb config top-n                    # Get specific value
  alb config top-n 20                 # Set value
  alb config colour-producer "#ff0"   # Set the edge colour for a role

Keys:
  top-n                       Entries shown by network groups/albums
  layout-k                    Spring layout spacing (0 = automatic)
  layout-iterations           Spring layout iterations
  layout-seed                 Spring layout random seed
  album-size                  Album node size
  album-highlight-color       Colour of the selected album
  album-highlight-connection-color
                              Colour of directly connected albums
  album-lowlight-color        Colour of unrelated albums while selecting
  person-colour               Group node colour
  connection-default-colour   Edge colour when nothing is selected
  connection-lowlight-colour  Edge colour for unrelated edges while selecting
  colour-<role>               Edge colour for musician, arranger, writer,
                              producer or unknown`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// UpdateResponse is the response for setting a config value.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// configKey reads and writes one setting as a string.
type configKey struct {
	get func(n *config.NetworkConfig) string
	set func(n *config.NetworkConfig, v string) error
}

func stringKey(field func(n *config.NetworkConfig) *string) configKey {
	return configKey{
		get: func(n *config.NetworkConfig) string { return *field(n) },
		set: func(n *config.NetworkConfig, v string) error {
			*field(n) = v
			return nil
		},
	}
}

func intKey(field func(n *config.NetworkConfig) *int) configKey {
	return configKey{
		get: func(n *config.NetworkConfig) string { return strconv.Itoa(*field(n)) },
		set: func(n *config.NetworkConfig, v string) error {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("not an integer: %s", v)
			}
			*field(n) = i
			return nil
		},
	}
}

func floatKey(field func(n *config.NetworkConfig) *float64) configKey {
	return configKey{
		get: func(n *config.NetworkConfig) string { return strconv.FormatFloat(*field(n), 'g', -1, 64) },
		set: func(n *config.NetworkConfig, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("not a number: %s", v)
			}
			*field(n) = f
			return nil
		},
	}
}

var configKeys = map[string]configKey{
	"top-n":             intKey(func(n *config.NetworkConfig) *int { return &n.TopN }),
	"layout-k":          floatKey(func(n *config.NetworkConfig) *float64 { return &n.Layout.K }),
	"layout-iterations": intKey(func(n *config.NetworkConfig) *int { return &n.Layout.Iterations }),
	"layout-seed": {
		get: func(n *config.NetworkConfig) string { return strconv.FormatInt(n.Layout.Seed, 10) },
		set: func(n *config.NetworkConfig, v string) error {
			s, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("not an integer: %s", v)
			}
			n.Layout.Seed = s
			return nil
		},
	},
	"album-size":                       floatKey(func(n *config.NetworkConfig) *float64 { return &n.AlbumSize }),
	"album-highlight-color":            stringKey(func(n *config.NetworkConfig) *string { return &n.AlbumHighlightColor }),
	"album-highlight-connection-color": stringKey(func(n *config.NetworkConfig) *string { return &n.AlbumHighlightConnectionColor }),
	"album-lowlight-color":             stringKey(func(n *config.NetworkConfig) *string { return &n.AlbumLowlightColor }),
	"person-colour":                    stringKey(func(n *config.NetworkConfig) *string { return &n.PersonColour }),
	"connection-default-colour":        stringKey(func(n *config.NetworkConfig) *string { return &n.ConnectionDefaultColour }),
	"connection-lowlight-colour":       stringKey(func(n *config.NetworkConfig) *string { return &n.ConnectionLowlightColour }),
}

// lookupConfigKey resolves fixed keys and colour-<role> keys.
func lookupConfigKey(key string) (configKey, bool) {
	if k, ok := configKeys[key]; ok {
		return k, true
	}
	role, ok := strings.CutPrefix(key, "colour-")
	if !ok || role == "" {
		return configKey{}, false
	}
	return configKey{
		get: func(n *config.NetworkConfig) string { return n.ConnectionColourmap[role] },
		set: func(n *config.NetworkConfig, v string) error {
			if n.ConnectionColourmap == nil {
				n.ConnectionColourmap = make(map[string]string)
			}
			n.ConnectionColourmap[role] = v
			return nil
		},
	}, true
}

// configValues returns every setting keyed by its command-line name.
func configValues(n *config.NetworkConfig) map[string]string {
	out := make(map[string]string, len(configKeys)+len(n.ConnectionColourmap))
	for name, k := range configKeys {
		out[name] = k.get(n)
	}
	for role, c := range n.ConnectionColourmap {
		out["colour-"+role] = c
	}
	return out
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	// No args: show all config
	if len(args) == 0 {
		values := configValues(&cfg.Network)
		if humanOutput {
			names := make([]string, 0, len(values))
			for name := range values {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-34s %s\n", name+":", values[name])
			}
		} else {
			outputJSON(values)
		}
		return nil
	}

	key := normalizeKey(args[0])
	k, ok := lookupConfigKey(key)
	if !ok {
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	// One arg: get specific value
	if len(args) == 1 {
		if humanOutput {
			fmt.Println(k.get(&cfg.Network))
		} else {
			outputJSON(map[string]string{key: k.get(&cfg.Network)})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := k.set(&cfg.Network, value); err != nil {
		exitWithError(ExitError, "invalid value for %s: %v", key, err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}
	return nil
}

// normalizeKey converts key formats (top-n, top_n, TOP_N) to a consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
