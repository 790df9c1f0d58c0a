package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hostgraph/hostgraph/client"
	"github.com/hostgraph/hostgraph/internal/memgraph"
	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/service"
)

// localOptions configures queries run against a topology file.
type localOptions struct {
	file       string
	depth      int
	pathBudget int
	workers    int
	timeout    time.Duration
	verbose    bool
}

func newLocalCmd() *cobra.Command {
	opts := &localOptions{}
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Run host queries against a topology file without a server",
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Topology file (YAML or JSON)")
	cmd.PersistentFlags().IntVar(&opts.depth, "depth", 3, "Maximum path length")
	cmd.PersistentFlags().IntVar(&opts.pathBudget, "path-budget", 0, "Maximum paths explored (0: default, negative: unlimited)")
	cmd.PersistentFlags().IntVar(&opts.workers, "workers", 4, "Classification workers")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", time.Minute, "Query deadline")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log traversal details to stderr")
	_ = cmd.MarkPersistentFlagRequired("file")

	cmd.AddCommand(localCloseHostsCmd(opts))
	cmd.AddCommand(localDistanceCmd(opts))
	return cmd
}

// hostService loads the topology file into memory and wraps it in a
// HostService whose maximum depth is the requested one.
func (o *localOptions) hostService() (*service.HostService, error) {
	var topo models.Topology
	if err := readTopologyFile(o.file, &topo); err != nil {
		return nil, err
	}

	g, err := memgraph.FromTopology(&topo)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", o.file, err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if o.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	return service.NewHostService(g, service.HostLimits{
		DefaultDepth: o.depth,
		MaxDepth:     o.depth,
		PathBudget:   o.pathBudget,
		Workers:      o.workers,
		Timeout:      o.timeout,
	}, log), nil
}

func localCloseHostsCmd(opts *localOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "close-hosts <address>",
		Short: "List the hosts close to an address in a topology file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.hostService()
			if err != nil {
				return err
			}
			res, err := svc.CloseHosts(cmd.Context(), args[0], opts.depth)
			if err != nil {
				return fmt.Errorf("close hosts: %w", err)
			}
			printCloseHosts(toClientCloseHosts(res))
			return nil
		},
	}
}

func localDistanceCmd(opts *localOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "distance <from> <to>",
		Short: "Show how many hops separate two hosts in a topology file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.hostService()
			if err != nil {
				return err
			}
			res, err := svc.Distance(cmd.Context(), args[0], args[1], opts.depth)
			if err != nil {
				return fmt.Errorf("distance: %w", err)
			}
			printDistance(&client.DistanceResult{
				Source:    res.Source,
				Target:    res.Target,
				MaxDepth:  res.MaxDepth,
				Found:     res.Found,
				Distance:  res.Distance,
				PathTypes: pathTypeStrings(res.PathTypes),
			})
			return nil
		},
	}
}

func pathTypeStrings(types []models.PathType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func toClientCloseHosts(res *models.CloseHostsResult) *client.CloseHostsResult {
	out := &client.CloseHostsResult{
		Source:   res.Source,
		MaxDepth: res.MaxDepth,
		Hosts:    make([]client.CloseHost, 0, len(res.Hosts)),
	}
	for _, h := range res.Hosts {
		out.Hosts = append(out.Hosts, client.CloseHost{
			ID:        h.ID,
			Address:   h.Address,
			Distance:  h.Distance,
			PathTypes: pathTypeStrings(h.PathTypes),
		})
	}
	return out
}
