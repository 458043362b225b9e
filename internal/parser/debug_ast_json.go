package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"rush/internal/ast"

	"gopkg.in/yaml.v3"
)

// WalkAST recursively traverses an AST and serializes it into a machine-centric map structure.
// The same map feeds both the JSON and the YAML renderings.
func WalkAST(node ast.Node) interface{} {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return nil
	}

	switch n := node.(type) {
	case *ast.Literal:
		return map[string]interface{}{
			"type":     "Literal",
			"position": n.Token.Position,
			"kind":     string(n.Value.Type()),
			"value":    n.Value.Inspect(),
		}

	case *ast.Binary:
		return map[string]interface{}{
			"type":     "Binary",
			"position": n.Token.Position,
			"operator": n.Operator.Name(),
			"left":     WalkAST(n.Left),
			"right":    WalkAST(n.Right),
		}

	case *ast.Unary:
		return map[string]interface{}{
			"type":     "Unary",
			"position": n.Token.Position,
			"operator": n.Operator.Name(),
			"operand":  WalkAST(n.Operand),
		}

	case *ast.If:
		return map[string]interface{}{
			"type":       "If",
			"position":   n.Token.Position,
			"condition":  WalkAST(n.Condition),
			"thenBranch": WalkAST(n.ThenBranch),
			"elseBranch": WalkAST(n.ElseBranch),
		}

	case *ast.Command:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = WalkAST(a)
		}
		return map[string]interface{}{
			"type":      "Command",
			"position":  n.Token.Position,
			"name":      n.Name,
			"arguments": args,
		}

	case *ast.Empty:
		return map[string]interface{}{"type": "Empty"}

	default:
		return map[string]interface{}{
			"type": "Unknown",
			"node": fmt.Sprintf("%T", n),
		}
	}
}

func RenderASTAsJSON(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.String(), nil
}

func RenderASTAsYAML(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to close YAML encoder: %w", err)
	}
	return buf.String(), nil
}

// RenderAST renders node in one of the supported debug formats: text, json or yaml.
func RenderAST(node ast.Node, format string) (string, error) {
	switch format {
	case "text":
		return RenderASTAsText(node, 0) + "\n", nil
	case "json":
		return RenderASTAsJSON(node)
	case "yaml":
		return RenderASTAsYAML(node)
	default:
		return "", fmt.Errorf("unknown AST format %q", format)
	}
}
