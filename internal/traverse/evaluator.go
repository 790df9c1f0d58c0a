package traverse

import "github.com/hostgraph/hostgraph/internal/models"

// Evaluation is an evaluator's verdict on one path.
type Evaluation struct {
	// Include reports the path as a result.
	Include bool
	// Continue expands the path by one more hop.
	Continue bool
}

// Evaluator decides inclusion and continuation for each path the engine builds.
type Evaluator func(p Path) Evaluation

// CloseHostEvaluator accepts paths of length 1..maxDepth that end at an IP
// node whose address differs from sourceAddress. Every path shorter than
// maxDepth is expanded further, whatever its end node carries.
func CloseHostEvaluator(sourceAddress string, maxDepth int) Evaluator {
	return func(p Path) Evaluation {
		n := p.Length()
		if n < 1 || n > maxDepth {
			return Evaluation{Continue: n < maxDepth}
		}

		return Evaluation{
			Include:  isOtherHost(p.End(), sourceAddress),
			Continue: n < maxDepth,
		}
	}
}

// IPOnlyContinuation is the strict evaluator: like CloseHostEvaluator, but a
// path is only expanded past its end node when that node is an IP node. The
// source is always expanded.
func IPOnlyContinuation(sourceAddress string, maxDepth int) Evaluator {
	base := CloseHostEvaluator(sourceAddress, maxDepth)

	return func(p Path) Evaluation {
		ev := base(p)
		if p.Length() > 0 && !p.End().HasLabel(models.LabelIP) {
			ev.Continue = false
		}

		return ev
	}
}

func isOtherHost(n *models.Node, sourceAddress string) bool {
	return n.HasLabel(models.LabelIP) && n.Address() != sourceAddress
}
