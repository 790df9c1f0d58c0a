package graphql

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/hostgraph/hostgraph/internal/metrics"
	"github.com/hostgraph/hostgraph/internal/models"
)

// GraphQL error codes, reported under extensions.code.
const (
	codeNotFound         = "NOT_FOUND"
	codeBadRequest       = "BAD_REQUEST"
	codeBudgetExceeded   = "PATH_BUDGET_EXCEEDED"
	codeTraversalTimeout = "TRAVERSAL_TIMEOUT"
	codeInternalError    = "INTERNAL_ERROR"
)

// errUnsupportedField is returned for selectable fields with no resolver,
// such as introspection, which this server does not serve.
var errUnsupportedField = errors.New("field is not supported")

// gqlErr maps a service error onto a GraphQL error at path. Unknown errors
// are logged and reported without their details.
func gqlErr(ctx context.Context, log *logrus.Logger, err error, path ast.Path) *gqlerror.Error {
	var travErr *models.TraversalError

	code, message := codeInternalError, "internal server error"

	switch {
	case errors.Is(err, models.ErrNodeNotFound):
		code, message = codeNotFound, err.Error()
	case errors.Is(err, models.ErrSourceNotFound),
		errors.Is(err, models.ErrAmbiguousSource),
		errors.Is(err, models.ErrTargetNotFound),
		errors.Is(err, models.ErrDepthOutOfRange),
		errors.Is(err, errUnsupportedField):
		code, message = codeBadRequest, err.Error()
	case errors.Is(err, models.ErrPathBudgetExceeded):
		code, message = codeBudgetExceeded, "query explores too many paths; lower the depth"
	case errors.Is(err, context.DeadlineExceeded):
		code, message = codeTraversalTimeout, "query did not finish in time"
	case errors.As(err, &travErr):
		log.WithError(err).WithFields(logrus.Fields{
			"depth":     travErr.Depth,
			"client_id": ClientIDFromContext(ctx),
		}).Error("graphql traversal failed")
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"path":      path.String(),
			"client_id": ClientIDFromContext(ctx),
		}).Error("graphql resolver failed")
	}

	metrics.ErrorsTotal.WithLabelValues("graphql_" + strings.ToLower(code)).Inc()

	return &gqlerror.Error{
		Message:    message,
		Path:       path,
		Extensions: map[string]any{"code": code},
	}
}
