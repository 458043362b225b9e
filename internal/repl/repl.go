package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"rush/internal/ast"
	"rush/internal/evaluator"
	"rush/internal/history"
	"rush/internal/object"
	"rush/internal/parser"
	"rush/internal/util"
	"strings"
)

const PROMPT = ">> "

// LineReader supplies one input line per call and returns io.EOF when input ends.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// HistoryWriter records evaluated segments.
type HistoryWriter interface {
	Append(ctx context.Context, e history.Entry) (int64, error)
}

type Repl struct {
	Reader    LineReader
	Out       io.Writer
	ErrOut    io.Writer
	Evaluator *evaluator.Evaluator
	History   HistoryWriter

	Prompt       string
	DebugAST     string
	ErrorContext bool
}

// Run reads lines until the reader reports io.EOF or ctx is cancelled.
func (r *Repl) Run(ctx context.Context) error {
	prompt := r.Prompt
	if prompt == "" {
		prompt = PROMPT
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.Reader.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		r.EvalLine(ctx, line)
	}
}

// EvalLine evaluates every segment of line in order. A segment that fails to
// parse or evaluate reports its error and the remaining segments still run.
func (r *Repl) EvalLine(ctx context.Context, line string) {
	for _, res := range parser.Parse(line) {
		if res.Err != nil {
			r.printSyntaxError(res)
			continue
		}

		if r.DebugAST != "" {
			r.dumpAST(res.Expression)
		}

		val, err := r.Evaluator.Eval(ctx, res.Expression)
		if _, empty := res.Expression.(*ast.Empty); empty && err == nil {
			continue
		}

		entry := history.Entry{Input: strings.TrimSpace(res.Source)}
		if err != nil {
			fmt.Fprintf(r.ErrOut, "error evaluating expression: %v\n", err)
			entry.Error = err.Error()
		} else {
			fmt.Fprintln(r.Out, object.Format(val))
			entry.Result = object.Stringify(val)
			entry.Kind = string(val.Type())
		}
		r.record(ctx, entry)
	}
}

func (r *Repl) printSyntaxError(res parser.Result) {
	fmt.Fprintf(r.ErrOut, "syntax error: %v\n", res.Err)

	var syntaxErr *parser.SyntaxError
	if r.ErrorContext && errors.As(res.Err, &syntaxErr) {
		fmt.Fprintln(r.ErrOut, util.GetContextLine(syntaxErr.Source, syntaxErr.Column()))
	}
}

func (r *Repl) dumpAST(exp ast.Expression) {
	rendered, err := parser.RenderAST(exp, r.DebugAST)
	if err != nil {
		slog.Warn("failed to render AST", slog.String("format", r.DebugAST), slog.Any("error", err))
		return
	}
	fmt.Fprintln(r.ErrOut, strings.TrimRight(rendered, "\n"))
}

func (r *Repl) record(ctx context.Context, entry history.Entry) {
	if r.History == nil {
		return
	}
	if _, err := r.History.Append(ctx, entry); err != nil {
		slog.Warn("failed to record history", slog.String("input", entry.Input), slog.Any("error", err))
	}
}
