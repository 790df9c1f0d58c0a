package graphql

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/99designs/gqlgen/graphql"
	"github.com/sirupsen/logrus"
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

//go:embed schema.graphql
var schemaSDL string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})

// Config configures an executable schema.
type Config struct {
	Resolvers *Resolver
}

// ExecutableSchema serves the topology schema from a Resolver.
type ExecutableSchema struct {
	resolvers *Resolver
}

var _ graphql.ExecutableSchema = (*ExecutableSchema)(nil)

// NewExecutableSchema creates an ExecutableSchema for gqlgen's handler.
func NewExecutableSchema(cfg Config) *ExecutableSchema {
	return &ExecutableSchema{resolvers: cfg.Resolvers}
}

// Schema returns the parsed schema.
func (s *ExecutableSchema) Schema() *ast.Schema { return parsedSchema }

// Costs charged by Complexity. Traversals dominate; list fields scale with
// the number of items they may return.
const (
	traversalCost = 50
	maxComplexity = 5000
)

// Complexity estimates the cost of one field for the complexity limit.
func (s *ExecutableSchema) Complexity(_ context.Context, typeName, field string, childComplexity int, args map[string]any) (int, bool) {
	switch typeName + "." + field {
	case "Query.closeHosts", "Query.distance":
		return traversalCost + childComplexity, true
	case "Query.nodes":
		return 1 + intArg(args, "limit", 50)*childComplexity/10, true
	case "Node.neighbors":
		return 1 + intArg(args, "limit", 100)*(1+childComplexity)/10, true
	}

	return 0, false
}

// Exec resolves the operation held in ctx.
func (s *ExecutableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)

	e := &executor{opCtx: opCtx, log: s.resolvers.Log}
	data := e.selectFields(ctx, s.resolvers.query(), opCtx.Operation.SelectionSet, nil)

	raw, err := json.Marshal(data)
	if err != nil {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "encoding response: %v", err))
	}

	return graphql.OneShot(&graphql.Response{Data: raw, Errors: e.errs})
}

// object is a resolved GraphQL object. Field values are plain data, nested
// objects, lists of objects, or resolvers run only when the field is selected.
type object struct {
	typeName string
	fields   map[string]any
}

// fieldResolver computes a field from its arguments.
type fieldResolver func(ctx context.Context, args map[string]any) (any, error)

// response is a JSON object that keeps the selection order.
type response []member

type member struct {
	key   string
	value any
}

// MarshalJSON implements json.Marshaler.
func (r response) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, m := range r {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

type executor struct {
	opCtx *graphql.OperationContext
	log   *logrus.Logger
	errs  gqlerror.List
}

func (e *executor) fail(ctx context.Context, err error, path ast.Path) {
	e.errs = append(e.errs, gqlErr(ctx, e.log, err, path))
}

func (e *executor) selectFields(ctx context.Context, obj *object, sel ast.SelectionSet, path ast.Path) response {
	fields := graphql.CollectFields(e.opCtx, sel, []string{obj.typeName})
	out := make(response, 0, len(fields))

	for _, f := range fields {
		fieldPath := append(slices.Clone(path), ast.PathName(f.Alias))

		if f.Name == "__typename" {
			out = append(out, member{f.Alias, obj.typeName})
			continue
		}

		v, ok := obj.fields[f.Name]
		if !ok {
			e.fail(ctx, errUnsupportedField, fieldPath)
			out = append(out, member{f.Alias, nil})

			continue
		}

		if resolve, isResolver := v.(fieldResolver); isResolver {
			var err error
			if v, err = resolve(ctx, f.ArgumentMap(e.opCtx.Variables)); err != nil {
				e.fail(ctx, err, fieldPath)
				out = append(out, member{f.Alias, nil})

				continue
			}
		}

		out = append(out, member{f.Alias, e.value(ctx, v, f.Selections, fieldPath)})
	}

	return out
}

func (e *executor) value(ctx context.Context, v any, sel ast.SelectionSet, path ast.Path) any {
	switch v := v.(type) {
	case *object:
		if v == nil {
			return nil
		}

		return e.selectFields(ctx, v, sel, path)
	case []*object:
		out := make([]any, len(v))
		for i, o := range v {
			out[i] = e.value(ctx, o, sel, append(slices.Clone(path), ast.PathIndex(i)))
		}

		return out
	default:
		return v
	}
}
