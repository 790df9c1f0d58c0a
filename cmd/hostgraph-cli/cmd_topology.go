package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostgraph/hostgraph/client"
)

func newTopologyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Import or export the whole graph",
	}
	cmd.AddCommand(topologyImportCmd())
	cmd.AddCommand(topologyExportCmd())
	return cmd
}

func topologyImportCmd() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Upsert a topology document (YAML or JSON, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var topo client.Topology
			if err := readTopologyFile(args[0], &topo); err != nil {
				return err
			}

			res, err := apiClient.Topology.Import(cmd.Context(), &topo, replace)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			if flagFmt == "quiet" {
				return nil
			}
			output(res, "")
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete the stored graph before loading")
	return cmd
}

func topologyExportCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored graph as a topology document",
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := apiClient.Topology.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if outputPath == "" {
				outputPath = fmt.Sprintf("hostgraph-topology-%s.json",
					time.Now().UTC().Format("20060102T150405Z"))
			}
			if err := writeTopologyFile(outputPath, topo); err != nil {
				return err
			}

			if outputPath != "-" {
				fmt.Fprintf(os.Stderr, "Exported %d nodes, %d relationships to %s\n",
					len(topo.Nodes), len(topo.Relationships), outputPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file, .yaml/.yml for YAML (default: hostgraph-topology-<timestamp>.json, - for stdout)")
	return cmd
}
