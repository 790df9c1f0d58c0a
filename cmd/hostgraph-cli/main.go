// Command hostgraph-cli talks to a hostgraph server and runs close-host
// queries against local topology files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hostgraph/hostgraph/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.3.0"
	commit    = ""
	buildDate = ""
)

const defaultURL = "http://localhost:3030"

var (
	apiClient  *client.Client
	flagURL    string
	flagKey    string
	flagFmt    string
	flagConfig string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("hostgraph version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("hostgraph version %s-dev", version)
}

// profileConfig holds connection settings for a single profile.
type profileConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// profilesFile is the config file layout.
type profilesFile struct {
	Profiles      map[string]profileConfig `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

// active returns the selected profile, or false when there is none.
func (f *profilesFile) active() (profileConfig, bool) {
	name := f.ActiveProfile
	if name == "" {
		name = "default"
	}
	p, ok := f.Profiles[name]
	return p, ok
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "hostgraph",
		Short:   "hostgraph CLI: find structurally close hosts in a network topology",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			resolveConfig()
			var opts []client.Option
			if flagKey != "" {
				opts = append(opts, client.WithAPIKey(flagKey))
			}
			apiClient = client.New(flagURL, opts...)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "hostgraph server URL (env: HOSTGRAPH_URL)")
	rootCmd.PersistentFlags().StringVar(&flagKey, "api-key", "", "API key (env: HOSTGRAPH_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table|quiet")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ~/.hostgraph/config.yaml)")

	skipClient := func(cmd *cobra.Command, args []string) {}

	initCmd := newInitCmd()
	initCmd.PersistentPreRun = skipClient
	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) { resolveConfig() }
	localCmd := newLocalCmd()
	localCmd.PersistentPreRun = skipClient

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(newNodeCmd())
	rootCmd.AddCommand(newRelationshipCmd())
	rootCmd.AddCommand(newTopologyCmd())
	rootCmd.AddCommand(newCloseHostsCmd())
	rootCmd.AddCommand(newDistanceCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// configPath returns the config file location: --config, else
// ~/.hostgraph/config.yaml.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hostgraph", "config.yaml"), nil
}

func loadConfigFile() (string, *profilesFile, error) {
	path, err := configPath()
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return path, nil, err
	}
	var cfg profilesFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return path, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return path, &cfg, nil
}

// resolveConfig fills the URL and key. Flag takes precedence, then env,
// then the active config profile.
func resolveConfig() {
	if flagURL == defaultURL {
		if v := os.Getenv("HOSTGRAPH_URL"); v != "" {
			flagURL = v
		}
	}
	if flagKey == "" {
		flagKey = os.Getenv("HOSTGRAPH_API_KEY")
	}

	_, cfg, err := loadConfigFile()
	if err != nil {
		return
	}
	p, ok := cfg.active()
	if !ok {
		return
	}
	if flagURL == defaultURL && p.URL != "" {
		flagURL = p.URL
	}
	if flagKey == "" && p.APIKey != "" {
		flagKey = p.APIKey
	}
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
