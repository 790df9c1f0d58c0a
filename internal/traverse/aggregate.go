package traverse

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hostgraph/hostgraph/internal/models"
)

// ctxCheckEvery is how many paths a classification worker handles between context checks.
const ctxCheckEvery = 1024

type hostAcc struct {
	node     *models.Node
	distance int
	types    PathTypeSet
}

func (a *hostAcc) merge(o *hostAcc) {
	a.distance = min(a.distance, o.distance)
	a.types |= o.types
}

// Aggregate folds accepted paths into one CloseHost per destination node ID.
// Paths are classified in parallel by up to workers goroutines, each building
// a partial result that is then merged. The distance of a host is its
// shortest path; its path types are the union over all its paths. Hosts are
// ordered by distance, then address, then ID.
func Aggregate(ctx context.Context, paths []Path, workers int) ([]models.CloseHost, error) {
	if len(paths) == 0 {
		return []models.CloseHost{}, nil
	}

	workers = max(1, min(workers, len(paths)))
	chunk := (len(paths) + workers - 1) / workers
	// Rounding the chunk up can leave trailing workers with nothing to do.
	workers = (len(paths) + chunk - 1) / chunk
	partials := make([]map[string]*hostAcc, workers)

	g, gctx := errgroup.WithContext(ctx)

	for w := range workers {
		lo := w * chunk
		hi := min(lo+chunk, len(paths))

		g.Go(func() error {
			part := make(map[string]*hostAcc)

			for i, p := range paths[lo:hi] {
				if i%ctxCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}

				acc := &hostAcc{node: p.End(), distance: p.Length(), types: Classify(p)}
				if cur, ok := part[acc.node.ID]; ok {
					cur.merge(acc)
				} else {
					part[acc.node.ID] = acc
				}
			}

			partials[w] = part

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]*hostAcc)

	for _, part := range partials {
		for id, acc := range part {
			if cur, ok := merged[id]; ok {
				cur.merge(acc)
			} else {
				merged[id] = acc
			}
		}
	}

	hosts := make([]models.CloseHost, 0, len(merged))
	for id, acc := range merged {
		hosts = append(hosts, models.CloseHost{
			ID:        id,
			Address:   acc.node.Address(),
			Distance:  acc.distance,
			PathTypes: acc.types.Types(),
		})
	}

	slices.SortFunc(hosts, func(a, b models.CloseHost) int {
		return cmp.Or(
			cmp.Compare(a.Distance, b.Distance),
			cmp.Compare(a.Address, b.Address),
			cmp.Compare(a.ID, b.ID),
		)
	})

	return hosts, nil
}
