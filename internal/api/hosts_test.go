package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/hostgraph/hostgraph/internal/api"
	"github.com/hostgraph/hostgraph/internal/models"
)

func TestHostClose_OK(t *testing.T) {
	t.Parallel()

	var gotDepth int

	svc := &mockHostService{
		closeFn: func(_ context.Context, address string, depth int) (*models.CloseHostsResult, error) {
			gotDepth = depth

			return &models.CloseHostsResult{
				Source:   address,
				MaxDepth: 2,
				Hosts: []models.CloseHost{
					{ID: "ip2", Address: "10.0.0.2", Distance: 2, PathTypes: []models.PathType{models.PathTypeSubnet}},
				},
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewHostHandler(svc, testLogger())
	r.GET("/hosts/:address/close", h.Close)

	w := doRequest(r, http.MethodGet, "/hosts/10.0.0.1/close?depth=2", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotDepth != 2 {
		t.Errorf("depth = %d, want 2", gotDepth)
	}

	res := decodeBody[models.CloseHostsResult](t, w)

	if res.Source != "10.0.0.1" || len(res.Hosts) != 1 || res.Hosts[0].PathTypes[0] != models.PathTypeSubnet {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestHostClose_DefaultDepth(t *testing.T) {
	t.Parallel()

	var gotDepth int

	svc := &mockHostService{
		closeFn: func(_ context.Context, _ string, depth int) (*models.CloseHostsResult, error) {
			gotDepth = depth

			return &models.CloseHostsResult{Hosts: []models.CloseHost{}}, nil
		},
	}

	r := newTestRouter()
	r.GET("/hosts/:address/close", api.NewHostHandler(svc, testLogger()).Close)

	if w := doRequest(r, http.MethodGet, "/hosts/10.0.0.1/close", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if gotDepth != -1 {
		t.Errorf("depth = %d, want -1 for the service default", gotDepth)
	}
}

func TestHostClose_BadDepth(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	r.GET("/hosts/:address/close", api.NewHostHandler(&mockHostService{}, testLogger()).Close)

	for _, q := range []string{"depth=two", "depth=1.5"} {
		if w := doRequest(r, http.MethodGet, "/hosts/10.0.0.1/close?"+q, ""); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, w.Code)
		}
	}
}

func TestHostClose_NegativeDepthUsesDefault(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"depth=-1", "depth=-7"} {
		gotDepth := 0
		svc := &mockHostService{
			closeFn: func(_ context.Context, address string, depth int) (*models.CloseHostsResult, error) {
				gotDepth = depth
				return &models.CloseHostsResult{Source: address, Hosts: []models.CloseHost{}}, nil
			},
		}

		r := newTestRouter()
		r.GET("/hosts/:address/close", api.NewHostHandler(svc, testLogger()).Close)

		if w := doRequest(r, http.MethodGet, "/hosts/10.0.0.1/close?"+q, ""); w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", q, w.Code)
		}

		if gotDepth != -1 {
			t.Errorf("%s: depth = %d, want -1 for the service default", q, gotDepth)
		}
	}
}

func TestHostClose_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"source not found", models.ErrSourceNotFound, http.StatusBadRequest, api.ErrCodeSourceNotFound},
		{"ambiguous source", models.ErrAmbiguousSource, http.StatusBadRequest, api.ErrCodeAmbiguousSource},
		{"depth too large", fmt.Errorf("%w (9 > 6)", models.ErrDepthOutOfRange), http.StatusBadRequest, api.ErrCodeDepthOutOfRange},
		{
			"budget",
			&models.TraversalError{Depth: 4, Err: models.ErrPathBudgetExceeded},
			http.StatusUnprocessableEntity, api.ErrCodeBudgetExceeded,
		},
		{
			"deadline",
			&models.TraversalError{Depth: 2, Err: context.DeadlineExceeded},
			http.StatusGatewayTimeout, api.ErrCodeTraversalTimeout,
		},
		{
			"graph fault",
			&models.TraversalError{Depth: 1, Err: errors.New("connection reset")},
			http.StatusInternalServerError, api.ErrCodeTraversalFailed,
		},
		{"other", errors.New("boom"), http.StatusInternalServerError, api.ErrCodeInternalError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockHostService{
				closeFn: func(context.Context, string, int) (*models.CloseHostsResult, error) {
					return nil, tc.err
				},
			}

			r := newTestRouter()
			r.GET("/hosts/:address/close", api.NewHostHandler(svc, testLogger()).Close)

			w := doRequest(r, http.MethodGet, "/hosts/10.0.0.1/close", "")
			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, w.Code, w.Body.String())
			}

			if got := errorCode(t, w); got != tc.wantErr {
				t.Errorf("code = %q, want %q", got, tc.wantErr)
			}
		})
	}
}

func TestHostDistance(t *testing.T) {
	t.Parallel()

	svc := &mockHostService{
		distanceFn: func(_ context.Context, from, to string, depth int) (*models.DistanceResult, error) {
			if to == "10.9.9.9" {
				return nil, models.ErrTargetNotFound
			}

			return &models.DistanceResult{Source: from, Target: to, MaxDepth: depth, Found: true, Distance: 2}, nil
		},
	}

	r := newTestRouter()
	r.GET("/hosts/:address/distance/:target", api.NewHostHandler(svc, testLogger()).Distance)

	w := doRequest(r, http.MethodGet, "/hosts/10.0.0.1/distance/10.0.0.2?depth=4", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	res := decodeBody[models.DistanceResult](t, w)

	if !res.Found || res.Distance != 2 || res.MaxDepth != 4 {
		t.Errorf("unexpected result %+v", res)
	}

	w = doRequest(r, http.MethodGet, "/hosts/10.0.0.1/distance/10.9.9.9", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	if got := errorCode(t, w); got != api.ErrCodeTargetNotFound {
		t.Errorf("code = %q, want %q", got, api.ErrCodeTargetNotFound)
	}
}
