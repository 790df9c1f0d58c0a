package traverse

import (
	"context"

	"github.com/hostgraph/hostgraph/internal/models"
)

// Default traversal limits.
const (
	DefaultMaxPaths = 200_000 // total paths generated per traversal
	DefaultWorkers  = 4       // classification goroutines
)

// Options bound the work a single traversal may do.
type Options struct {
	// MaxPaths caps the number of paths generated across all levels.
	// Zero means DefaultMaxPaths; a negative value disables the cap.
	MaxPaths int
	// Workers is the number of goroutines used to classify accepted paths.
	Workers int
}

func (o Options) maxPaths() int {
	if o.MaxPaths == 0 {
		return DefaultMaxPaths
	}

	return o.MaxPaths
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return DefaultWorkers
	}

	return o.Workers
}

// Stats describes the work done by one traversal.
type Stats struct {
	Explored int // paths generated, source included
	Accepted int // paths the evaluator included
	Levels   int // BFS levels expanded
}

// Engine runs breadth-first, multi-path traversals over a Graph.
// Nodes are never marked visited: every distinct path is kept, so one node
// may be reached many times and paths may revisit nodes.
type Engine struct {
	graph    Graph
	relTypes []string
	opts     Options
}

// NewEngine creates an Engine following RelationshipTypes.
func NewEngine(g Graph, opts Options) *Engine {
	return &Engine{graph: g, relTypes: RelationshipTypes, opts: opts}
}

// Traverse expands paths from source level by level up to maxDepth edges and
// returns, in discovery order, every path eval included. Any graph fault,
// context error or exhausted path budget fails the whole traversal.
func (e *Engine) Traverse(ctx context.Context, source *models.Node, maxDepth int, eval Evaluator) ([]Path, Stats, error) {
	var stats Stats

	root := NewPath(source)
	stats.Explored = 1

	if maxDepth < 1 || !eval(root).Continue {
		return nil, stats, nil
	}

	budget := e.opts.maxPaths()
	frontier := []Path{root}

	var accepted []Path

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, stats, &models.TraversalError{Depth: depth, Err: err}
		}

		neighbors, err := e.graph.Neighbors(ctx, frontierIDs(frontier), e.relTypes)
		if err != nil {
			return nil, stats, &models.TraversalError{Depth: depth, Err: err}
		}

		stats.Levels = depth

		var next []Path

		for _, p := range frontier {
			for _, nb := range neighbors[p.End().ID] {
				stats.Explored++
				if budget > 0 && stats.Explored > budget {
					return nil, stats, &models.TraversalError{Depth: depth, Err: models.ErrPathBudgetExceeded}
				}

				np := p.Extend(nb.Node)
				ev := eval(np)

				if ev.Include {
					accepted = append(accepted, np)
				}

				if ev.Continue && depth < maxDepth {
					next = append(next, np)
				}
			}
		}

		frontier = next
	}

	stats.Accepted = len(accepted)

	return accepted, stats, nil
}

// frontierIDs returns the distinct end-node IDs of paths, in first-seen order.
func frontierIDs(paths []Path) []string {
	seen := make(map[string]struct{}, len(paths))
	ids := make([]string, 0, len(paths))

	for _, p := range paths {
		id := p.End().ID
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return ids
}
