package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/traverse"
)

var testLimits = HostLimits{
	DefaultDepth: 3,
	MaxDepth:     6,
	PathBudget:   1000,
	Workers:      2,
	Timeout:      time.Second,
}

func TestHostService_CloseHostsDepth(t *testing.T) {
	tests := []struct {
		name      string
		depth     int
		wantDepth int
		wantErr   error
	}{
		{name: "default", depth: -1, wantDepth: 3},
		{name: "explicit", depth: 5, wantDepth: 5},
		{name: "zero", depth: 0, wantDepth: 0},
		{name: "at max", depth: 6, wantDepth: 6},
		{name: "over max", depth: 7, wantErr: models.ErrDepthOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotDepth int
			var gotOpts traverse.Options
			called := false

			store := &mockHostStore{
				closeHosts: func(_ context.Context, _ string, maxDepth int, opts traverse.Options) ([]models.CloseHost, traverse.Stats, error) {
					called = true
					gotDepth = maxDepth
					gotOpts = opts

					return []models.CloseHost{}, traverse.Stats{}, nil
				},
			}

			svc := NewHostService(store, testLimits, quietLogger())
			res, err := svc.CloseHosts(context.Background(), "10.0.0.1", tc.depth)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}

				if called {
					t.Error("store called despite invalid depth")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if gotDepth != tc.wantDepth || res.MaxDepth != tc.wantDepth {
				t.Errorf("depth = %d (result %d), want %d", gotDepth, res.MaxDepth, tc.wantDepth)
			}

			if gotOpts.MaxPaths != 1000 || gotOpts.Workers != 2 {
				t.Errorf("options = %+v, want budget 1000 and 2 workers", gotOpts)
			}
		})
	}
}

func TestHostService_CloseHostsAppliesDeadline(t *testing.T) {
	store := &mockHostStore{
		closeHosts: func(ctx context.Context, _ string, _ int, _ traverse.Options) ([]models.CloseHost, traverse.Stats, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("store context has no deadline")
			}

			<-ctx.Done()

			return nil, traverse.Stats{}, &models.TraversalError{Depth: 1, Err: ctx.Err()}
		},
	}

	limits := testLimits
	limits.Timeout = 10 * time.Millisecond

	svc := NewHostService(store, limits, quietLogger())

	_, err := svc.CloseHosts(context.Background(), "10.0.0.1", 2)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestHostService_CloseHostsResult(t *testing.T) {
	hosts := []models.CloseHost{
		{ID: "ip2", Address: "10.0.0.2", Distance: 2, PathTypes: []models.PathType{models.PathTypeSubnet}},
	}

	store := &mockHostStore{
		closeHosts: func(_ context.Context, _ string, _ int, _ traverse.Options) ([]models.CloseHost, traverse.Stats, error) {
			return hosts, traverse.Stats{Explored: 4, Accepted: 1, Levels: 2}, nil
		},
	}

	svc := NewHostService(store, testLimits, quietLogger())

	got, err := svc.CloseHosts(context.Background(), "10.0.0.1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &models.CloseHostsResult{Source: "10.0.0.1", MaxDepth: 2, Hosts: hosts}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestHostService_Distance(t *testing.T) {
	tests := []struct {
		name    string
		host    models.CloseHost
		found   bool
		err     error
		want    *models.DistanceResult
		wantErr error
	}{
		{
			name:  "found",
			host:  models.CloseHost{Distance: 2, PathTypes: []models.PathType{models.PathTypeSubnet}},
			found: true,
			want: &models.DistanceResult{
				Source: "a", Target: "b", MaxDepth: 3, Found: true,
				Distance: 2, PathTypes: []models.PathType{models.PathTypeSubnet},
			},
		},
		{
			name: "not within depth",
			want: &models.DistanceResult{Source: "a", Target: "b", MaxDepth: 3},
		},
		{
			name:    "unknown target",
			err:     models.ErrTargetNotFound,
			wantErr: models.ErrTargetNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockHostStore{
				distance: func(_ context.Context, _, _ string, _ int, _ traverse.Options) (models.CloseHost, bool, error) {
					return tc.host, tc.found, tc.err
				},
			}

			svc := NewHostService(store, testLimits, quietLogger())
			got, err := svc.Distance(context.Background(), "a", "b", -1)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTraversalOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{models.ErrSourceNotFound, "invalid_input"},
		{models.ErrAmbiguousSource, "invalid_input"},
		{&models.TraversalError{Depth: 3, Err: models.ErrPathBudgetExceeded}, "budget_exceeded"},
		{&models.TraversalError{Depth: 1, Err: context.DeadlineExceeded}, "timeout"},
		{context.Canceled, "canceled"},
		{errors.New("boom"), "error"},
	}

	for _, tc := range tests {
		if got := traversalOutcome(tc.err); got != tc.want {
			t.Errorf("traversalOutcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
