package traverse_test

import (
	"testing"

	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/traverse"
)

func pathOf(nodes ...*models.Node) traverse.Path {
	p := traverse.NewPath(nodes[0])
	for _, n := range nodes[1:] {
		p = p.Extend(n)
	}

	return p
}

func TestCloseHostEvaluator(t *testing.T) {
	src := &models.Node{ID: "a", Labels: []string{models.LabelIP}, Properties: map[string]any{"address": "A"}}
	other := &models.Node{ID: "b", Labels: []string{models.LabelIP}, Properties: map[string]any{"address": "B"}}
	twin := &models.Node{ID: "a2", Labels: []string{models.LabelIP}, Properties: map[string]any{"address": "A"}}
	subnet := &models.Node{ID: "s", Labels: []string{models.LabelSubnet}}

	eval := traverse.CloseHostEvaluator("A", 3)

	tests := []struct {
		name string
		path traverse.Path
		want traverse.Evaluation
	}{
		{name: "source", path: pathOf(src), want: traverse.Evaluation{Continue: true}},
		{name: "subnet at depth 1", path: pathOf(src, subnet), want: traverse.Evaluation{Continue: true}},
		{name: "other host", path: pathOf(src, subnet, other), want: traverse.Evaluation{Include: true, Continue: true}},
		{name: "same address", path: pathOf(src, subnet, twin), want: traverse.Evaluation{Continue: true}},
		{name: "other host at max depth", path: pathOf(src, subnet, other, subnet), want: traverse.Evaluation{}},
		{name: "included at max depth", path: pathOf(src, subnet, subnet, other), want: traverse.Evaluation{Include: true}},
		{name: "beyond max depth", path: pathOf(src, subnet, subnet, subnet, other), want: traverse.Evaluation{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := eval(tc.path); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestIPOnlyContinuation(t *testing.T) {
	src := &models.Node{ID: "a", Labels: []string{models.LabelIP}, Properties: map[string]any{"address": "A"}}
	other := &models.Node{ID: "b", Labels: []string{models.LabelIP}, Properties: map[string]any{"address": "B"}}
	subnet := &models.Node{ID: "s", Labels: []string{models.LabelSubnet}}

	eval := traverse.IPOnlyContinuation("A", 3)

	if got := eval(pathOf(src)); !got.Continue {
		t.Error("source must be expanded")
	}

	if got := eval(pathOf(src, subnet)); got.Continue || got.Include {
		t.Errorf("subnet hop: got %+v, want stop", got)
	}

	if got := eval(pathOf(src, other)); !got.Continue || !got.Include {
		t.Errorf("host hop: got %+v, want include and continue", got)
	}
}

func TestIPOnlyContinuation_CannotCrossSubnet(t *testing.T) {
	g := newGraph(t,
		[]models.CreateNodeRequest{ip("a", "A"), node("s", models.LabelSubnet), ip("b", "B"), ip("c", "C")},
		has("s", "a"), has("s", "b"), has("a", "c"),
	)
	src := mustNode(t, g, "a")

	paths, _, err := traverse.NewEngine(g, traverse.Options{}).Traverse(t.Context(), src, 3, traverse.IPOnlyContinuation("A", 3))
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range paths {
		if p.End().ID == "b" {
			t.Fatalf("strict continuation reached b through a subnet: %v", p.IDs())
		}
	}

	if len(paths) == 0 {
		t.Fatal("expected c to be reached over the direct host link")
	}
}
