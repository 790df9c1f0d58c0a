package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hostgraph/hostgraph/client"
)

func newInitCmd() *cobra.Command {
	var (
		initURL     string
		initAPIKey  string
		initProfile string
		skipCheck   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write CLI connection settings",
		Long:  "Creates or updates a profile in ~/.hostgraph/config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if initURL == "" && initAPIKey == "" {
				var err error
				if initURL, initAPIKey, err = promptSettings(os.Stdin); err != nil {
					return err
				}
			}
			if initURL == "" {
				initURL = defaultURL
			}

			if !skipCheck {
				if err := testConnection(cmd.Context(), initURL, initAPIKey); err != nil {
					return fmt.Errorf("connection failed: %w", err)
				}
			}

			path, err := configPath()
			if err != nil {
				return err
			}
			if err := writeProfile(path, initProfile, profileConfig{URL: initURL, APIKey: initAPIKey}); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Printf("Profile %q saved to %s\n", initProfile, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&initURL, "server", "", "Server URL (non-interactive mode)")
	cmd.Flags().StringVar(&initAPIKey, "key", "", "API key (non-interactive mode)")
	cmd.Flags().StringVar(&initProfile, "profile", "default", "Profile name, made active")
	cmd.Flags().BoolVar(&skipCheck, "no-check", false, "Do not test the connection")
	return cmd
}

func promptSettings(in io.Reader) (url, apiKey string, err error) {
	reader := bufio.NewReader(in)

	fmt.Printf("Server URL [%s]: ", defaultURL)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", "", err
	}
	url = strings.TrimSpace(line)

	fmt.Print("API key (empty when auth is disabled): ")
	line, err = reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", "", err
	}
	return url, strings.TrimSpace(line), nil
}

// testConnection checks that the server answers and accepts the key.
func testConnection(ctx context.Context, url, apiKey string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	c := client.New(url, client.WithAPIKey(apiKey))
	if _, err := c.Health(ctx); err != nil {
		return err
	}
	_, err := c.Stats(ctx)
	return err
}

// writeProfile stores p under name in the config file at path, keeping any
// other profiles, and makes it the active profile.
func writeProfile(path, name string, p profileConfig) error {
	cfg := profilesFile{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse existing %s: %w", path, err)
		}
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]profileConfig{}
	}
	cfg.Profiles[name] = p
	cfg.ActiveProfile = name

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
