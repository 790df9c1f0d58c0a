package store

import (
	"context"
	"fmt"

	"github.com/hostgraph/hostgraph/internal/models"
)

// RelationshipStore provides relationship CRUD operations.
type RelationshipStore struct {
	Base
}

// NewRelationshipStore creates a new RelationshipStore.
func NewRelationshipStore(base Base) *RelationshipStore {
	return &RelationshipStore{Base: base}
}

// CreateRelationship inserts a new relationship and returns the created record.
func (s *RelationshipStore) CreateRelationship(ctx context.Context, req models.CreateRelationshipRequest) (*models.Relationship, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	propsJSON, err := marshalProperties(req.Properties)
	if err != nil {
		return nil, fmt.Errorf("preparing relationship properties: %w", err)
	}

	query := `INSERT INTO hg_relationships (source, target, type, properties)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + relationshipColumns

	r, err := scanRelationship(s.Pool.QueryRow(ctx, query, req.Source, req.Target, req.Type, propsJSON).Scan)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return nil, models.ErrDuplicateKey
		case pgForeignKeyViolation:
			return nil, fmt.Errorf("relationship %s->%s: %w", req.Source, req.Target, models.ErrNodeNotFound)
		}

		return nil, fmt.Errorf("scanning created relationship: %w", err)
	}

	return r, nil
}

// ListRelationships returns relationships filtered by any of source, target and type.
// The boolean result reports whether more rows follow the returned page.
func (s *RelationshipStore) ListRelationships(
	ctx context.Context,
	source, target, relType string,
	limit, offset int,
) ([]models.Relationship, bool, error) {
	limit, offset = clampPage(limit, offset)

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query, args := buildRelationshipListQuery(source, target, relType, limit, offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("querying relationships: %w", err)
	}
	defer rows.Close()

	rels, err := collectRelationships(rows)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(rels) > limit
	if hasMore {
		rels = rels[:limit]
	}

	return rels, hasMore, nil
}

// buildRelationshipListQuery constructs the filtered SELECT query and arguments for ListRelationships.
func buildRelationshipListQuery(source, target, relType string, limit, offset int) (query string, args []any) {
	where := ""
	args = make([]any, 0, 5)

	for _, f := range []struct{ col, val string }{
		{"source", source},
		{"target", target},
		{"type", relType},
	} {
		if f.val == "" {
			continue
		}

		args = append(args, f.val)

		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}

		where += fmt.Sprintf("%s = $%d", f.col, len(args))
	}

	query = "SELECT " + relationshipColumns + " FROM hg_relationships" + where
	query += " ORDER BY source, target, type"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit+1, offset)

	return query, args
}

// DeleteRelationship removes the relationship identified by source, target and type.
func (s *RelationshipStore) DeleteRelationship(ctx context.Context, source, target, relType string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := s.Pool.Exec(ctx,
		"DELETE FROM hg_relationships WHERE source = $1 AND target = $2 AND type = $3",
		source, target, relType)
	if err != nil {
		return fmt.Errorf("executing relationship delete: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return models.ErrRelationshipNotFound
	}

	return nil
}
