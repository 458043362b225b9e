package parser

import (
	"fmt"
	"reflect"
	"rush/internal/ast"
	"strings"
)

// RenderASTAsText produces a human-centric, indented tree of the AST.
// It is optimized for debugging precedence and binding.
func RenderASTAsText(node ast.Node, indent int) string {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return strings.Repeat("  ", indent) + "nil"
	}

	sp := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *ast.Literal:
		return fmt.Sprintf("%sLiteral %s : %s", sp, n.Value.Inspect(), n.Value.Type())

	case *ast.Binary:
		return fmt.Sprintf("%sBinary %s\n%s\n%s", sp, n.Operator.Name(),
			RenderASTAsText(n.Left, indent+1), RenderASTAsText(n.Right, indent+1))

	case *ast.Unary:
		return fmt.Sprintf("%sUnary %s\n%s", sp, n.Operator.Name(), RenderASTAsText(n.Operand, indent+1))

	case *ast.If:
		var sb strings.Builder
		sb.WriteString(sp + "If\n")
		sb.WriteString(RenderASTAsText(n.Condition, indent+1) + "\n")
		sb.WriteString(sp + "Then\n")
		sb.WriteString(RenderASTAsText(n.ThenBranch, indent+1) + "\n")
		sb.WriteString(sp + "Else\n")
		sb.WriteString(RenderASTAsText(n.ElseBranch, indent+1))
		return sb.String()

	case *ast.Command:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%sCommand %s", sp, n.Name))
		for _, a := range n.Args {
			sb.WriteString("\n")
			sb.WriteString(RenderASTAsText(a, indent+1))
		}
		return sb.String()

	case *ast.Empty:
		return sp + "Empty"

	default:
		return fmt.Sprintf("%s<unknown %T>", sp, n)
	}
}
