package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/models"
)

type mockNodeService struct {
	listFn func(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error)
	getFn  func(ctx context.Context, nodeID string) (*models.Node, error)
}

func (m *mockNodeService) ListNodes(ctx context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
	return m.listFn(ctx, label, limit, offset)
}

func (m *mockNodeService) GetNode(ctx context.Context, nodeID string) (*models.Node, error) {
	return m.getFn(ctx, nodeID)
}

func (m *mockNodeService) CreateNode(context.Context, models.CreateNodeRequest) (*models.Node, error) {
	panic("not used")
}

func (m *mockNodeService) DeleteNode(context.Context, string) error {
	panic("not used")
}

type mockGraphService struct {
	neighborsFn func(ctx context.Context, nodeID string, limit int) (*models.NeighborResult, error)
	statsFn     func(ctx context.Context) (*models.GraphStats, error)
}

func (m *mockGraphService) Neighbors(ctx context.Context, nodeID string, limit int) (*models.NeighborResult, error) {
	return m.neighborsFn(ctx, nodeID, limit)
}

func (m *mockGraphService) Stats(ctx context.Context) (*models.GraphStats, error) {
	return m.statsFn(ctx)
}

type mockHostService struct {
	closeFn    func(ctx context.Context, address string, depth int) (*models.CloseHostsResult, error)
	distanceFn func(ctx context.Context, from, to string, depth int) (*models.DistanceResult, error)
}

func (m *mockHostService) CloseHosts(ctx context.Context, address string, depth int) (*models.CloseHostsResult, error) {
	return m.closeFn(ctx, address, depth)
}

func (m *mockHostService) Distance(ctx context.Context, from, to string, depth int) (*models.DistanceResult, error) {
	return m.distanceFn(ctx, from, to, depth)
}

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ipNode(id, addr string) *models.Node {
	return &models.Node{
		ID:         id,
		Labels:     []string{"IP"},
		Properties: map[string]any{models.PropAddress: addr},
		CreatedAt:  testTime,
		UpdatedAt:  testTime,
	}
}

func testResolver() (*Resolver, *mockNodeService, *mockGraphService, *mockHostService) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	nodes := &mockNodeService{}
	graph := &mockGraphService{}
	hosts := &mockHostService{}

	return &Resolver{NodeSvc: nodes, GraphSvc: graph, HostSvc: hosts, Log: log}, nodes, graph, hosts
}

type gqlError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path"`
	Extensions map[string]any `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// post sends one GraphQL request to the handler and decodes the response.
func post(t *testing.T, r *Resolver, query string, vars map[string]any) gqlResponse {
	t.Helper()

	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	NewHandler(r).ServeHTTP(w, req)

	var resp gqlResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding %d response %q: %v", w.Code, w.Body.String(), err)
	}

	return resp
}

func errorCodes(resp gqlResponse) []string {
	codes := make([]string, len(resp.Errors))
	for i, e := range resp.Errors {
		codes[i] = fmt.Sprint(e.Extensions["code"])
	}

	return codes
}

func TestCloseHosts(t *testing.T) {
	r, nodes, _, hosts := testResolver()

	var gotAddr string

	var gotDepth int

	hosts.closeFn = func(_ context.Context, address string, depth int) (*models.CloseHostsResult, error) {
		gotAddr, gotDepth = address, depth

		return &models.CloseHostsResult{
			Source:   address,
			MaxDepth: 2,
			Hosts: []models.CloseHost{
				{ID: "ip2", Address: "10.0.0.2", Distance: 2, PathTypes: []models.PathType{models.PathTypeSubnet}},
			},
		}, nil
	}
	nodes.getFn = func(_ context.Context, id string) (*models.Node, error) {
		return ipNode(id, "10.0.0.2"), nil
	}

	resp := post(t, r, `{
		near: closeHosts(address: "10.0.0.1") {
			__typename
			maxDepth
			hosts { address distance pathTypes node { id labels createdAt } }
		}
	}`, nil)

	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	if gotAddr != "10.0.0.1" || gotDepth != -1 {
		t.Errorf("CloseHosts(%q, %d), want (10.0.0.1, -1)", gotAddr, gotDepth)
	}

	want := `{"near":{"__typename":"CloseHostsResult","maxDepth":2,"hosts":[` +
		`{"address":"10.0.0.2","distance":2,"pathTypes":["subnet"],` +
		`"node":{"id":"ip2","labels":["IP"],"createdAt":"2026-03-01T12:00:00Z"}}]}}`
	if diff := cmp.Diff(want, string(resp.Data)); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestCloseHosts_DepthVariable(t *testing.T) {
	tests := []struct {
		name  string
		vars  map[string]any
		depth int
	}{
		{name: "omitted", vars: nil, depth: -1},
		{name: "explicit", vars: map[string]any{"d": 4}, depth: 4},
		{name: "zero", vars: map[string]any{"d": 0}, depth: 0},
		{name: "negative", vars: map[string]any{"d": -9}, depth: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, hosts := testResolver()

			got := -100
			hosts.closeFn = func(_ context.Context, address string, depth int) (*models.CloseHostsResult, error) {
				got = depth

				return &models.CloseHostsResult{Source: address, Hosts: []models.CloseHost{}}, nil
			}

			resp := post(t, r, `query($d: Int) { closeHosts(address: "10.0.0.1", depth: $d) { source } }`, tt.vars)
			if len(resp.Errors) > 0 {
				t.Fatalf("unexpected errors: %+v", resp.Errors)
			}

			if got != tt.depth {
				t.Errorf("depth = %d, want %d", got, tt.depth)
			}
		})
	}
}

func TestCloseHosts_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "unknown source", err: models.ErrSourceNotFound, code: codeBadRequest},
		{name: "ambiguous source", err: models.ErrAmbiguousSource, code: codeBadRequest},
		{name: "depth too large", err: models.ErrDepthOutOfRange, code: codeBadRequest},
		{name: "budget", err: fmt.Errorf("wrapped: %w", models.ErrPathBudgetExceeded), code: codeBudgetExceeded},
		{name: "timeout", err: context.DeadlineExceeded, code: codeTraversalTimeout},
		{name: "store failure", err: fmt.Errorf("connection reset"), code: codeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, hosts := testResolver()
			hosts.closeFn = func(context.Context, string, int) (*models.CloseHostsResult, error) {
				return nil, tt.err
			}

			resp := post(t, r, `{ closeHosts(address: "10.9.9.9") { source } }`, nil)

			if diff := cmp.Diff([]string{tt.code}, errorCodes(resp)); diff != "" {
				t.Fatalf("codes mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff([]any{"closeHosts"}, resp.Errors[0].Path); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}

			if tt.code == codeInternalError && resp.Errors[0].Message != "internal server error" {
				t.Errorf("internal error leaked: %q", resp.Errors[0].Message)
			}

			if string(resp.Data) != `{"closeHosts":null}` {
				t.Errorf("data = %s", resp.Data)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		res  models.DistanceResult
		want string
	}{
		{
			name: "found",
			res:  models.DistanceResult{Found: true, Distance: 4, PathTypes: []models.PathType{models.PathTypeContact}},
			want: `{"distance":{"found":true,"distance":4,"pathTypes":["contact"]}}`,
		},
		{
			name: "not found",
			res:  models.DistanceResult{},
			want: `{"distance":{"found":false,"distance":null,"pathTypes":[]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, hosts := testResolver()

			var from, to string

			hosts.distanceFn = func(_ context.Context, f, tgt string, _ int) (*models.DistanceResult, error) {
				from, to = f, tgt
				res := tt.res

				return &res, nil
			}

			resp := post(t, r, `{ distance(from: "10.0.0.1", to: "10.1.0.3", depth: 6) { found distance pathTypes } }`, nil)
			if len(resp.Errors) > 0 {
				t.Fatalf("unexpected errors: %+v", resp.Errors)
			}

			if from != "10.0.0.1" || to != "10.1.0.3" {
				t.Errorf("Distance(%q, %q)", from, to)
			}

			if diff := cmp.Diff(tt.want, string(resp.Data)); diff != "" {
				t.Errorf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNode_NotFound(t *testing.T) {
	r, nodes, _, _ := testResolver()
	nodes.getFn = func(context.Context, string) (*models.Node, error) {
		return nil, models.ErrNodeNotFound
	}

	resp := post(t, r, `{ node(id: "missing") { id } }`, nil)

	if diff := cmp.Diff([]string{codeNotFound}, errorCodes(resp)); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestNode_Neighbors(t *testing.T) {
	r, nodes, graph, _ := testResolver()
	nodes.getFn = func(_ context.Context, id string) (*models.Node, error) {
		return &models.Node{ID: id, Labels: []string{"Subnet"}, CreatedAt: testTime, UpdatedAt: testTime}, nil
	}

	var gotLimit int

	graph.neighborsFn = func(_ context.Context, id string, limit int) (*models.NeighborResult, error) {
		gotLimit = limit

		return &models.NeighborResult{Neighbors: []models.Neighbor{
			{
				Relationship: models.Relationship{Source: id, Target: "ip1", Type: "HAS", CreatedAt: testTime},
				Node:         ipNode("ip1", "10.0.0.1"),
			},
		}}, nil
	}

	resp := post(t, r, `{ node(id: "net") { address neighbors(limit: 5000) { relationship { type target } node { address } } } }`, nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	if gotLimit != maxPageLimit {
		t.Errorf("limit = %d, want %d", gotLimit, maxPageLimit)
	}

	want := `{"node":{"address":null,"neighbors":[{"relationship":{"type":"HAS","target":"ip1"},"node":{"address":"10.0.0.1"}}]}}`
	if diff := cmp.Diff(want, string(resp.Data)); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestNodes_Paging(t *testing.T) {
	r, nodes, _, _ := testResolver()

	var gotLabel string

	var gotLimit, gotOffset int

	nodes.listFn = func(_ context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
		gotLabel, gotLimit, gotOffset = label, limit, offset

		return []models.Node{*ipNode("ip1", "10.0.0.1")}, true, nil
	}

	resp := post(t, r, `{ nodes(label: "IP", limit: 0, offset: -3) { hasMore nodes { id } } }`, nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	if gotLabel != "IP" || gotLimit != 1 || gotOffset != 0 {
		t.Errorf("ListNodes(%q, %d, %d), want (IP, 1, 0)", gotLabel, gotLimit, gotOffset)
	}

	if diff := cmp.Diff(`{"nodes":{"hasMore":true,"nodes":[{"id":"ip1"}]}}`, string(resp.Data)); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestStats_LabelsSorted(t *testing.T) {
	r, _, graph, _ := testResolver()
	graph.statsFn = func(context.Context) (*models.GraphStats, error) {
		return &models.GraphStats{
			Nodes:         6,
			Relationships: 5,
			Labels:        map[string]int{"Subnet": 2, "Contact": 1, "IP": 3},
		}, nil
	}

	resp := post(t, r, `{ stats { nodes labels { label count } } }`, nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}

	want := `{"stats":{"nodes":6,"labels":[{"label":"Contact","count":1},{"label":"IP","count":3},{"label":"Subnet","count":2}]}}`
	if diff := cmp.Diff(want, string(resp.Data)); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestComplexityLimit(t *testing.T) {
	r, nodes, _, _ := testResolver()
	nodes.listFn = func(context.Context, string, int, int) ([]models.Node, bool, error) {
		t.Fatal("ListNodes called for a rejected query")

		return nil, false, nil
	}

	resp := post(t, r, `{ nodes(limit: 1000) { nodes { neighbors(limit: 1000) { node { id } } } } }`, nil)

	if len(resp.Errors) == 0 {
		t.Fatal("expected a complexity error")
	}
}

func TestIntrospectionRejected(t *testing.T) {
	r, _, _, _ := testResolver()

	resp := post(t, r, `{ __schema { queryType { name } } }`, nil)

	if len(resp.Errors) == 0 {
		t.Fatal("expected introspection to be rejected")
	}
}

func TestIntArg(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want int
	}{
		{name: "absent", v: nil, want: 7},
		{name: "int", v: 3, want: 3},
		{name: "int64", v: int64(4), want: 4},
		{name: "float", v: float64(5), want: 5},
		{name: "number", v: json.Number("6"), want: 6},
		{name: "string", v: "8", want: 8},
		{name: "garbage", v: "x", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}
			if tt.v != nil {
				args["n"] = tt.v
			}

			if got := intArg(args, "n", 7); got != tt.want {
				t.Errorf("intArg = %d, want %d", got, tt.want)
			}
		})
	}
}
