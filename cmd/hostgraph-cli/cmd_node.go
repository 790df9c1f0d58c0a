package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hostgraph/hostgraph/client"
)

// pageFlags are the --limit/--offset pair shared by the list commands.
type pageFlags struct {
	limit, offset int
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.limit, "limit", 0, "Max results (server default when 0)")
	cmd.Flags().IntVar(&p.offset, "offset", 0, "Number of results to skip")
}

func (p *pageFlags) check() error {
	if p.limit < 0 || p.offset < 0 {
		return errors.New("--limit and --offset must be non-negative")
	}
	return nil
}

// parseProps decodes a --props JSON object. An empty string yields nil.
func parseProps(raw string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var props map[string]any
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, fmt.Errorf("--props must be a JSON object: %w", err)
	}
	return props, nil
}

// buildNodeRequest assembles a create request from CLI input. --address wins
// over an address key inside --props.
func buildNodeRequest(labelList, id, address, propsJSON string) (*client.CreateNodeRequest, error) {
	props, err := parseProps(propsJSON)
	if err != nil {
		return nil, err
	}

	labels := slices.DeleteFunc(strings.Split(labelList, ","), func(l string) bool { return l == "" })
	if len(labels) == 0 {
		return nil, errors.New("at least one label is required")
	}

	if address != "" {
		if props == nil {
			props = map[string]any{}
		}
		props["address"] = address
	}

	if slices.Contains(labels, "IP") {
		if a, _ := props["address"].(string); a == "" {
			return nil, errors.New("IP nodes need --address")
		}
	}

	return &client.CreateNodeRequest{ID: id, Labels: labels, Properties: props}, nil
}

func newNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage hosts, subnets, units and contacts",
	}
	cmd.AddCommand(nodeCreateCmd(), nodeGetCmd(), nodeDeleteCmd(), nodeListCmd(), nodeNeighborsCmd())
	return cmd
}

func nodeCreateCmd() *cobra.Command {
	var id, address, propsJSON string
	cmd := &cobra.Command{
		Use:     "create <label>[,<label>...]",
		Short:   "Create a node",
		Example: "  hostgraph-cli node create IP --id ip1 --address 10.0.0.1\n  hostgraph-cli node create Subnet --id net1 --props '{\"cidr\":\"10.0.0.0/24\"}'",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req, err := buildNodeRequest(args[0], id, address, propsJSON)
			if err != nil {
				fatal("create node", err)
			}
			node, err := apiClient.Nodes.Create(context.Background(), req)
			if err != nil {
				fatal("create node", err)
			}
			output(node, node.ID)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Node ID (generated when empty)")
	cmd.Flags().StringVar(&address, "address", "", "Address property, required for IP nodes")
	cmd.Flags().StringVar(&propsJSON, "props", "", "Properties as a JSON object")
	return cmd
}

func nodeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			node, err := apiClient.Nodes.Get(context.Background(), args[0])
			if err != nil {
				fatal("get node", err)
			}
			if flagFmt == "table" {
				formatTable(nodeHeaders, nodeRows([]client.Node{*node}))
				return
			}
			output(node, node.ID)
		},
	}
}

func nodeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a node together with its relationships",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Nodes.Delete(context.Background(), args[0]); err != nil {
				fatal("delete node", err)
			}
			if flagFmt != "quiet" {
				fmt.Printf("deleted node %s\n", args[0])
			}
		},
	}
}

var nodeHeaders = []string{"ID", "LABELS", "ADDRESS"}

func nodeRows(nodes []client.Node) [][]string {
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{n.ID, strings.Join(n.Labels, ","), n.Address()})
	}
	return rows
}

func nodeListCmd() *cobra.Command {
	var label string
	var page pageFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List nodes, optionally by label",
		Run: func(cmd *cobra.Command, args []string) {
			if err := page.check(); err != nil {
				fatal("list nodes", err)
			}
			nodes, more, err := apiClient.Nodes.List(context.Background(), &client.NodeListOptions{
				Label:  label,
				Limit:  page.limit,
				Offset: page.offset,
			})
			if err != nil {
				fatal("list nodes", err)
			}
			switch flagFmt {
			case "table":
				formatTable(nodeHeaders, nodeRows(nodes))
				if more {
					fmt.Printf("(more results after offset %d)\n", page.offset+len(nodes))
				}
			case "quiet":
				for _, n := range nodes {
					fmt.Println(n.ID)
				}
			default:
				output(nodes, "")
			}
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Only nodes carrying this label (IP, Subnet, ...)")
	page.register(cmd)
	return cmd
}

func nodeNeighborsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "neighbors <id>",
		Short: "Show relationships touching a node, in both directions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			res, err := apiClient.Nodes.Neighbors(context.Background(), args[0], limit)
			if err != nil {
				fatal("get neighbors", err)
			}
			switch flagFmt {
			case "table":
				rows := make([][]string, 0, len(res.Neighbors))
				for _, nb := range res.Neighbors {
					var other, addr string
					if nb.Node != nil {
						other, addr = nb.Node.ID, nb.Node.Address()
					}
					rel := nb.Relationship
					rows = append(rows, []string{rel.Source, rel.Type, rel.Target, other, addr})
				}
				formatTable([]string{"SOURCE", "TYPE", "TARGET", "NEIGHBOR", "ADDRESS"}, rows)
			case "quiet":
				for _, nb := range res.Neighbors {
					if nb.Node != nil {
						fmt.Println(nb.Node.ID)
					}
				}
			default:
				output(res, "")
			}
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max neighbors (server default when 0)")
	return cmd
}
