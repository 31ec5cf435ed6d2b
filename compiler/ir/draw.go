package ir

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"
)

// DrawHandler renders a handler body as a terminal tree drawing, used by the
// "inspect" command for debugging lowered IR.
func DrawHandler(h *Handler) string {
	root := tree.NewTree(tree.NodeString(fmt.Sprintf("handler %s", h.Name)))
	for _, s := range h.Body {
		addStatement(root, s)
	}
	return root.String()
}

func addStatement(parent *tree.Tree, s *Statement) {
	var label string
	switch s.Kind {
	case StmtLet:
		label = fmt.Sprintf("let %s", s.Name)
	case StmtRespond:
		label = fmt.Sprintf("respond %d", s.Status)
	default:
		label = string(s.Kind)
	}
	node := parent.AddChild(tree.NodeString(fmt.Sprintf("%s (t%d)", label, s.Tier)))
	if s.Value != nil {
		addExpression(node, s.Value)
	}
}

func addExpression(parent *tree.Tree, e *Expression) {
	var label string
	switch e.Kind {
	case ExprLit:
		label = fmt.Sprintf("lit %v", e.Value)
	case ExprIdent:
		label = fmt.Sprintf("ident %s", e.Name)
	case ExprContext:
		label = fmt.Sprintf("ctx %s.%s", e.Source, e.Name)
	case ExprCall:
		label = fmt.Sprintf("call %s", e.Name)
	}
	node := parent.AddChild(tree.NodeString(fmt.Sprintf("%s (t%d)", label, e.Tier)))
	for _, a := range e.Args {
		addExpression(node, a)
	}
}
