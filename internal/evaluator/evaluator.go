package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"rush/internal/ast"
	"rush/internal/object"
	"rush/internal/sys"
)

var (
	ErrDivideByZero           = errors.New("divide by zero")
	ErrModuloByZero           = errors.New("modulo by zero")
	ErrInvalidCommandArgument = errors.New("invalid command argument")
	ErrNoRunner               = errors.New("no command runner configured")
)

// KindError reports an operand whose kind differs from the one the operator requires.
type KindError struct {
	Expected object.Kind
	Actual   object.Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

// OperatorError reports an operator the evaluator has no rule for.
type OperatorError struct {
	Operator string
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("unsupported operator: %s", e.Operator)
}

// CommandError wraps a failure to run an external program.
type CommandError struct {
	Name string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command '%s': %v", e.Name, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Evaluator walks expression trees. Env is the session-wide binding table; no
// current expression form reads or writes it.
type Evaluator struct {
	Env    *object.Environment
	Runner sys.Runner
}

func New(env *object.Environment, runner sys.Runner) *Evaluator {
	if env == nil {
		env = object.NewEnvironment()
	}
	return &Evaluator{Env: env, Runner: runner}
}

func (e *Evaluator) Eval(ctx context.Context, node ast.Expression) (object.Value, error) {
	switch node := node.(type) {

	case *ast.Literal:
		return node.Value, nil

	case *ast.Binary:
		return e.evalBinaryExpression(ctx, node)

	case *ast.Unary:
		return e.evalUnaryExpression(ctx, node)

	case *ast.If:
		return e.evalIfExpression(ctx, node)

	case *ast.Command:
		return e.evalCommand(ctx, node)

	case *ast.Empty:
		return object.NIL, nil

	default:
		return nil, fmt.Errorf("cannot evaluate %T", node)
	}
}

// evalBinaryExpression evaluates both operands before applying the operator;
// `&&` and `||` do not short-circuit.
func (e *Evaluator) evalBinaryExpression(ctx context.Context, node *ast.Binary) (object.Value, error) {
	left, err := e.Eval(ctx, node.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(ctx, node.Right)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case ast.Add, ast.Sub, ast.Mult, ast.Div, ast.Mod:
		return e.evalIntegerInfixExpression(node.Operator, left, right)
	case ast.Lt, ast.Gt, ast.Lte, ast.Gte:
		return e.evalComparisonExpression(node.Operator, left, right)
	case ast.Eq, ast.Neq:
		return e.evalEqualityExpression(node.Operator, left, right)
	case ast.And, ast.Or:
		return e.evalBooleanInfixExpression(node.Operator, left, right)
	default:
		return nil, &OperatorError{Operator: node.Operator.String()}
	}
}

func (e *Evaluator) evalIntegerInfixExpression(op ast.BinaryOp, left, right object.Value) (object.Value, error) {
	leftVal, err := expectNum(left)
	if err != nil {
		return nil, err
	}
	rightVal, err := expectNum(right)
	if err != nil {
		return nil, err
	}

	switch op {
	case ast.Add:
		return object.Num{Value: leftVal + rightVal}, nil
	case ast.Sub:
		return object.Num{Value: leftVal - rightVal}, nil
	case ast.Mult:
		return object.Num{Value: leftVal * rightVal}, nil
	case ast.Div:
		if rightVal == 0 {
			return nil, ErrDivideByZero
		}
		return object.Num{Value: leftVal / rightVal}, nil
	case ast.Mod:
		if rightVal == 0 {
			return nil, ErrModuloByZero
		}
		return object.Num{Value: leftVal % rightVal}, nil
	default:
		return nil, &OperatorError{Operator: op.String()}
	}
}

func (e *Evaluator) evalComparisonExpression(op ast.BinaryOp, left, right object.Value) (object.Value, error) {
	leftVal, err := expectNum(left)
	if err != nil {
		return nil, err
	}
	rightVal, err := expectNum(right)
	if err != nil {
		return nil, err
	}

	switch op {
	case ast.Lt:
		return object.NativeBoolToBool(leftVal < rightVal), nil
	case ast.Lte:
		return object.NativeBoolToBool(leftVal <= rightVal), nil
	case ast.Gt:
		return object.NativeBoolToBool(leftVal > rightVal), nil
	case ast.Gte:
		return object.NativeBoolToBool(leftVal >= rightVal), nil
	default:
		return nil, &OperatorError{Operator: op.String()}
	}
}

// evalEqualityExpression compares operands of the same kind; mixing kinds is an error.
func (e *Evaluator) evalEqualityExpression(op ast.BinaryOp, left, right object.Value) (object.Value, error) {
	if left.Type() != right.Type() {
		return nil, &KindError{Expected: left.Type(), Actual: right.Type()}
	}

	equal := object.Equal(left, right)
	if op == ast.Neq {
		equal = !equal
	}
	return object.NativeBoolToBool(equal), nil
}

func (e *Evaluator) evalBooleanInfixExpression(op ast.BinaryOp, left, right object.Value) (object.Value, error) {
	leftVal, err := expectBool(left)
	if err != nil {
		return nil, err
	}
	rightVal, err := expectBool(right)
	if err != nil {
		return nil, err
	}

	switch op {
	case ast.And:
		return object.NativeBoolToBool(leftVal && rightVal), nil
	case ast.Or:
		return object.NativeBoolToBool(leftVal || rightVal), nil
	default:
		return nil, &OperatorError{Operator: op.String()}
	}
}

// evalUnaryExpression negates a Num for both `-` and `!`.
func (e *Evaluator) evalUnaryExpression(ctx context.Context, node *ast.Unary) (object.Value, error) {
	operand, err := e.Eval(ctx, node.Operand)
	if err != nil {
		return nil, err
	}

	value, err := expectNum(operand)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case ast.Negate, ast.Inverse:
		return object.Num{Value: -value}, nil
	default:
		return nil, &OperatorError{Operator: node.Operator.String()}
	}
}

// evalIfExpression evaluates only the branch selected by the condition.
func (e *Evaluator) evalIfExpression(ctx context.Context, ie *ast.If) (object.Value, error) {
	condition, err := e.Eval(ctx, ie.Condition)
	if err != nil {
		return nil, err
	}

	taken, err := expectBool(condition)
	if err != nil {
		return nil, err
	}

	if taken {
		return e.Eval(ctx, ie.ThenBranch)
	}
	return e.Eval(ctx, ie.ElseBranch)
}

func (e *Evaluator) evalCommand(ctx context.Context, node *ast.Command) (object.Value, error) {
	args := make([]string, 0, len(node.Args))
	for _, a := range node.Args {
		if _, ok := a.(*ast.Command); ok {
			return nil, fmt.Errorf("%w: nested command %q", ErrInvalidCommandArgument, a.String())
		}
		val, err := e.Eval(ctx, a)
		if err != nil {
			return nil, err
		}
		args = append(args, object.Stringify(val))
	}

	if e.Runner == nil {
		return nil, &CommandError{Name: node.Name, Err: ErrNoRunner}
	}

	output, err := e.Runner.Run(ctx, node.Name, args)
	if err != nil {
		slog.Debug("command failed", slog.String("name", node.Name), slog.Any("error", err))
		return nil, &CommandError{Name: node.Name, Err: err}
	}
	return object.Sym{Value: output}, nil
}

func expectNum(v object.Value) (int64, error) {
	n, ok := v.(object.Num)
	if !ok {
		return 0, &KindError{Expected: object.NUM_OBJ, Actual: v.Type()}
	}
	return n.Value, nil
}

func expectBool(v object.Value) (bool, error) {
	b, ok := v.(object.Bool)
	if !ok {
		return false, &KindError{Expected: object.BOOL_OBJ, Actual: v.Type()}
	}
	return b.Value, nil
}
