package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/hostgraph/hostgraph/internal/api"
	"github.com/hostgraph/hostgraph/internal/models"
)

func TestTopologyImport(t *testing.T) {
	t.Parallel()

	var gotReplace bool

	svc := &mockTopologyService{
		importFn: func(_ context.Context, topo *models.Topology, opts models.ImportOptions) (*models.ImportResult, error) {
			gotReplace = opts.Replace
			if err := topo.Validate(); err != nil {
				return nil, err
			}

			return &models.ImportResult{NodesUpserted: len(topo.Nodes), Replaced: opts.Replace}, nil
		},
	}

	r := newTestRouter()
	r.POST("/topology", api.NewTopologyHandler(svc, testLogger()).Import)

	body := `{"nodes":[{"id":"ip1","labels":["IP"],"properties":{"address":"10.0.0.1"}}],"relationships":[]}`

	w := doRequest(r, http.MethodPost, "/topology?replace=true", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if !gotReplace {
		t.Error("replace flag not passed through")
	}

	bad := `{"nodes":[{"id":"a","labels":["Subnet"]}],"relationships":[{"source":"a","target":"b","type":"HAS"}]}`
	if w := doRequest(r, http.MethodPost, "/topology", bad); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for dangling relationship, got %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/topology", `{"nodes":[]}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty topology, got %d", w.Code)
	}
}

func TestTopologyExport(t *testing.T) {
	t.Parallel()

	svc := &mockTopologyService{
		exportFn: func(context.Context) (*models.Topology, error) {
			return nil, errors.New("db down")
		},
	}

	r := newTestRouter()
	r.GET("/topology", api.NewTopologyHandler(svc, testLogger()).Export)

	if w := doRequest(r, http.MethodGet, "/topology", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
