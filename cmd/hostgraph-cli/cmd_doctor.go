package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostgraph/hostgraph/client"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and connectivity",
		Long:  "Run diagnostic checks against config, server, schema, and auth",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

// doctorChecks runs every check against the resolved settings. Checks that
// depend on a failed one are skipped.
func doctorChecks(ctx context.Context) []checkResult {
	var results []checkResult

	if path, _, err := loadConfigFile(); err != nil {
		results = append(results, checkResult{
			Name: "Config file", Passed: false, Detail: path,
			Hint: "Run: hostgraph init (optional when HOSTGRAPH_URL is set)",
		})
	} else {
		results = append(results, checkResult{Name: "Config file", Passed: true, Detail: path})
	}

	results = append(results, checkResult{Name: "Server URL", Passed: true, Detail: flagURL})

	c := client.New(flagURL, client.WithAPIKey(flagKey), client.WithTimeout(5*time.Second))

	health, err := c.Health(ctx)
	if err != nil {
		return append(results, checkResult{
			Name: "Server reachable", Passed: false, Detail: flagURL,
			Hint: fmt.Sprintf("Is the hostgraph server running?\n   Error: %v", err),
		})
	}
	results = append(results, checkResult{
		Name: "Server reachable", Passed: true,
		Detail: fmt.Sprintf("v%s, database %s", health.Version, health.Database),
	})

	if ready, err := c.Ready(ctx); err != nil {
		results = append(results, checkResult{
			Name: "Server ready", Passed: false,
			Hint: fmt.Sprintf("Check database connectivity and migrations. Error: %v", err),
		})
	} else {
		results = append(results, checkResult{Name: "Server ready", Passed: true, Detail: ready.Status})
	}

	if _, err := c.Stats(ctx); err != nil {
		hint := fmt.Sprintf("Error: %v", err)
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			hint = "Set --api-key, HOSTGRAPH_API_KEY, or run hostgraph init"
		}
		results = append(results, checkResult{Name: "Authentication", Passed: false, Hint: hint})
	} else {
		results = append(results, checkResult{Name: "Authentication", Passed: true, Detail: "valid"})
	}

	return results
}

func runDoctor(ctx context.Context) error {
	fmt.Println("\nhostgraph doctor")
	fmt.Println("================")
	fmt.Println()

	allPassed := true
	for _, r := range doctorChecks(ctx) {
		mark := "ok  "
		if !r.Passed {
			mark = "FAIL"
			allPassed = false
		}
		if r.Detail != "" {
			fmt.Printf("[%s] %s: %s\n", mark, r.Name, r.Detail)
		} else {
			fmt.Printf("[%s] %s\n", mark, r.Name)
		}
		if !r.Passed && r.Hint != "" {
			fmt.Printf("       Hint: %s\n", r.Hint)
		}
	}

	fmt.Println()
	if !allPassed {
		return fmt.Errorf("doctor found issues")
	}
	fmt.Println("All checks passed.")
	return nil
}
