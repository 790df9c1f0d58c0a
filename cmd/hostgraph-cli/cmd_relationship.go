package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hostgraph/hostgraph/client"
)

func newRelationshipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relationship",
		Aliases: []string{"rel"},
		Short:   "Manage relationships",
	}
	cmd.AddCommand(relCreateCmd())
	cmd.AddCommand(relListCmd())
	cmd.AddCommand(relDeleteCmd())
	return cmd
}

func relCreateCmd() *cobra.Command {
	var relType, propsJSON string
	cmd := &cobra.Command{
		Use:   "create <source> <target>",
		Short: "Create a relationship",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			props, err := parseProps(propsJSON)
			if err != nil {
				fatal("create relationship", err)
			}
			req := &client.CreateRelationshipRequest{
				Source:     args[0],
				Target:     args[1],
				Type:       relType,
				Properties: props,
			}
			rel, err := apiClient.Relationships.Create(context.Background(), req)
			if err != nil {
				fatal("create relationship", err)
			}
			output(rel, rel.Source+"-"+rel.Type+"->"+rel.Target)
		},
	}
	cmd.Flags().StringVar(&relType, "type", "", "Relationship type (HAS, PART_OF, ...)")
	cmd.Flags().StringVar(&propsJSON, "props", "", "Properties as JSON")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func relListCmd() *cobra.Command {
	var source, target, relType string
	var page pageFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List relationships",
		Run: func(cmd *cobra.Command, args []string) {
			if err := page.check(); err != nil {
				fatal("list relationships", err)
			}
			opts := &client.RelationshipListOptions{
				Source: source,
				Target: target,
				Type:   relType,
				Limit:  page.limit,
				Offset: page.offset,
			}
			rels, _, err := apiClient.Relationships.List(context.Background(), opts)
			if err != nil {
				fatal("list relationships", err)
			}
			if flagFmt == "table" {
				var rows [][]string
				for _, r := range rels {
					rows = append(rows, []string{r.Source, r.Type, r.Target})
				}
				formatTable([]string{"SOURCE", "TYPE", "TARGET"}, rows)
				return
			}
			output(rels, "")
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Filter by source node ID")
	cmd.Flags().StringVar(&target, "target", "", "Filter by target node ID")
	cmd.Flags().StringVar(&relType, "type", "", "Filter by type")
	page.register(cmd)
	return cmd
}

func relDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <source> <target> <type>",
		Short: "Delete a relationship",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Relationships.Delete(context.Background(), args[0], args[1], args[2]); err != nil {
				fatal("delete relationship", err)
			}
			fmt.Println("deleted")
		},
	}
}
