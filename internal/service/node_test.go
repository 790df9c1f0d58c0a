package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hostgraph/hostgraph/internal/models"
)

func TestNodeService_CreateNode(t *testing.T) {
	tests := []struct {
		name        string
		storeErr    error
		wantErr     bool
		wantRefresh bool
	}{
		{name: "success", wantRefresh: true},
		{name: "store error", storeErr: errors.New("db down"), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockNodeStore{
				createNode: func(_ context.Context, req models.CreateNodeRequest) (*models.Node, error) {
					if tc.storeErr != nil {
						return nil, tc.storeErr
					}

					return &models.Node{ID: req.ID, Labels: req.Labels}, nil
				},
			}
			enq := &mockEnqueuer{}
			svc := NewNodeService(store, enq, quietLogger())

			node, err := svc.CreateNode(context.Background(), models.CreateNodeRequest{
				ID: "n1", Labels: []string{models.LabelSubnet},
			})

			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			} else if node.ID != "n1" {
				t.Errorf("node ID = %q, want n1", node.ID)
			}

			if got := len(enq.getReasons()) > 0; got != tc.wantRefresh {
				t.Errorf("refresh requested = %v, want %v", got, tc.wantRefresh)
			}
		})
	}
}

func TestNodeService_DeleteNode(t *testing.T) {
	store := &mockNodeStore{
		deleteNode: func(_ context.Context, nodeID string) error {
			if nodeID == "missing" {
				return models.ErrNodeNotFound
			}

			return nil
		},
	}
	enq := &mockEnqueuer{}
	svc := NewNodeService(store, enq, quietLogger())

	if err := svc.DeleteNode(context.Background(), "missing"); !errors.Is(err, models.ErrNodeNotFound) {
		t.Fatalf("err = %v, want ErrNodeNotFound", err)
	}

	if err := svc.DeleteNode(context.Background(), "n1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reasons := enq.getReasons()
	if len(reasons) != 1 || reasons[0] != "node.delete" {
		t.Errorf("refresh reasons = %v, want [node.delete]", reasons)
	}
}

func TestNodeService_PassThrough(t *testing.T) {
	store := &mockNodeStore{
		listNodes: func(_ context.Context, label string, limit, offset int) ([]models.Node, bool, error) {
			if label != models.LabelIP || limit != 10 || offset != 20 {
				t.Errorf("ListNodes(%q, %d, %d) got unexpected arguments", label, limit, offset)
			}

			return []models.Node{{ID: "a"}}, true, nil
		},
		getNode: func(_ context.Context, nodeID string) (*models.Node, error) {
			return &models.Node{ID: nodeID}, nil
		},
	}

	// A nil worker must be tolerated.
	svc := NewNodeService(store, nil, quietLogger())

	nodes, more, err := svc.ListNodes(context.Background(), models.LabelIP, 10, 20)
	if err != nil || len(nodes) != 1 || !more {
		t.Fatalf("ListNodes = %v, %v, %v", nodes, more, err)
	}

	node, err := svc.GetNode(context.Background(), "x")
	if err != nil || node.ID != "x" {
		t.Fatalf("GetNode = %v, %v", node, err)
	}

	if len(store.calls) != 2 {
		t.Errorf("calls = %v, want 2", store.calls)
	}
}

func TestRelationshipService_CreateAndDelete(t *testing.T) {
	store := &mockRelationshipStore{
		createRelationship: func(_ context.Context, req models.CreateRelationshipRequest) (*models.Relationship, error) {
			if req.Source == "dup" {
				return nil, models.ErrDuplicateKey
			}

			return &models.Relationship{Source: req.Source, Target: req.Target, Type: req.Type}, nil
		},
		deleteRelationship: func(_ context.Context, _, _, _ string) error {
			return models.ErrRelationshipNotFound
		},
	}
	enq := &mockEnqueuer{}
	svc := NewRelationshipService(store, enq, quietLogger())

	if _, err := svc.CreateRelationship(context.Background(), models.CreateRelationshipRequest{
		Source: "dup", Target: "b", Type: models.RelHas,
	}); !errors.Is(err, models.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}

	rel, err := svc.CreateRelationship(context.Background(), models.CreateRelationshipRequest{
		Source: "a", Target: "b", Type: models.RelPartOf,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rel.Type != models.RelPartOf {
		t.Errorf("type = %q, want PART_OF", rel.Type)
	}

	if err := svc.DeleteRelationship(context.Background(), "a", "b", models.RelHas); !errors.Is(err, models.ErrRelationshipNotFound) {
		t.Fatalf("err = %v, want ErrRelationshipNotFound", err)
	}

	if reasons := enq.getReasons(); len(reasons) != 1 {
		t.Errorf("refresh reasons = %v, want one", reasons)
	}
}
