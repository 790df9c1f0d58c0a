package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/hostgraph/hostgraph/client"
)

func newCloseHostsCmd() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "close-hosts <address>",
		Short: "List the hosts structurally close to an IP address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Hosts.Close(cmd.Context(), args[0], depth)
			if err != nil {
				return fmt.Errorf("close hosts: %w", err)
			}
			printCloseHosts(res)
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", client.DefaultDepth, "Maximum path length (default: server setting)")
	return cmd
}

func newDistanceCmd() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "distance <from> <to>",
		Short: "Show how many hops separate two hosts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := apiClient.Hosts.Distance(cmd.Context(), args[0], args[1], depth)
			if err != nil {
				return fmt.Errorf("distance: %w", err)
			}
			printDistance(res)
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", client.DefaultDepth, "Maximum path length searched (default: server setting)")
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show node and relationship counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := apiClient.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			if flagFmt == "table" {
				rows := [][]string{
					{"nodes", fmt.Sprint(stats.Nodes)},
					{"relationships", fmt.Sprint(stats.Relationships)},
				}
				for _, label := range slices.Sorted(maps.Keys(stats.Labels)) {
					rows = append(rows, []string{"label:" + label, fmt.Sprint(stats.Labels[label])})
				}
				formatTable([]string{"METRIC", "COUNT"}, rows)
				return nil
			}
			output(stats, fmt.Sprint(stats.Nodes))
			return nil
		},
	}
}
