package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hostgraph/hostgraph/client"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.Join(parts, "  "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

func formatQuiet(id string) {
	fmt.Println(id)
}

func output(v any, quietVal string) {
	switch flagFmt {
	case "quiet":
		formatQuiet(quietVal)
	default:
		// Table output needs a typed renderer; callers without one get JSON.
		formatJSON(v)
	}
}

// closeHostRows renders close hosts as ADDRESS, DISTANCE, PATH TYPES, ID rows.
func closeHostRows(hosts []client.CloseHost) [][]string {
	rows := make([][]string, 0, len(hosts))
	for _, h := range hosts {
		rows = append(rows, []string{h.Address, strconv.Itoa(h.Distance), strings.Join(h.PathTypes, ","), h.ID})
	}
	return rows
}

var closeHostHeaders = []string{"ADDRESS", "DISTANCE", "PATH TYPES", "ID"}

// printCloseHosts writes a close-hosts result in the selected format.
func printCloseHosts(res *client.CloseHostsResult) {
	switch flagFmt {
	case "table":
		formatTable(closeHostHeaders, closeHostRows(res.Hosts))
	case "quiet":
		for _, h := range res.Hosts {
			fmt.Println(h.Address)
		}
	default:
		formatJSON(res)
	}
}

// printDistance writes a distance result in the selected format.
func printDistance(res *client.DistanceResult) {
	switch flagFmt {
	case "table":
		dist, types := "-", "-"
		if res.Found {
			dist, types = strconv.Itoa(res.Distance), strings.Join(res.PathTypes, ",")
		}
		formatTable([]string{"SOURCE", "TARGET", "DISTANCE", "PATH TYPES"}, [][]string{{res.Source, res.Target, dist, types}})
	case "quiet":
		if res.Found {
			fmt.Println(res.Distance)
		} else {
			fmt.Println("-1")
		}
	default:
		formatJSON(res)
	}
}
