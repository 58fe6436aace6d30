// Package frontend wires the scanner and the parser into one pass over a source text.
package frontend

import (
	"context"
	"fmt"
	"os"

	"github.com/karupanerura/lox-frontend/internal/ast"
	"github.com/karupanerura/lox-frontend/internal/config"
	"github.com/karupanerura/lox-frontend/internal/diagnostics"
	"github.com/karupanerura/lox-frontend/internal/parser"
	"github.com/karupanerura/lox-frontend/internal/scanner"
	"github.com/karupanerura/lox-frontend/internal/token"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	Name        string           `json:"name,omitempty"`
	Mode        config.Mode      `json:"mode"`
	Tokens      []token.Token    `json:"tokens"`
	Exprs       []ast.Expr       `json:"exprs,omitempty"`
	Stmts       []ast.Stmt       `json:"stmts,omitempty"`
	Diagnostics diagnostics.List `json:"diagnostics,omitempty"`
	// Parsed is false when scan errors stopped the run before parsing.
	Parsed bool `json:"parsed"`
}

// Err returns the reported diagnostics, or nil when the run was clean.
func (r *Result) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	return r.Diagnostics
}

// Run scans source and, when scanning reported nothing, parses it in cfg.Mode.
// Every diagnostic also goes to reporter, which may be nil.
func Run(source string, cfg config.Config, reporter diagnostics.Reporter) *Result {
	var collector diagnostics.Collector
	sink := diagnostics.Reporter(&collector)
	if reporter != nil {
		sink = diagnostics.Multi(&collector, reporter)
	}

	result := &Result{Mode: cfg.Mode}
	result.Tokens = scanner.New(source, scanner.WithReporter(sink), scanner.WithDebug(cfg.Debug)).ScanTokens()
	if collector.HadError() {
		result.Diagnostics = collector.Errors()
		return result
	}

	p := parser.New(result.Tokens, parser.WithReporter(sink), parser.WithDebug(cfg.Debug))
	switch cfg.Mode {
	case config.ExpressionMode:
		result.Exprs, _ = p.Parse()
	case config.ProgramMode:
		result.Stmts, _ = p.ParseProgram()
	default:
		panic(fmt.Sprintf("should not reach here: unknown mode %q", cfg.Mode))
	}
	result.Parsed = true
	result.Diagnostics = collector.Errors()
	return result
}

// RunFiles runs every file concurrently. Results keep the order of paths; diagnostics
// stay in each result instead of going to a shared reporter.
func RunFiles(ctx context.Context, paths []string, cfg config.Config) ([]*Result, error) {
	results := make([]*Result, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i := i
		path := path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			source, err := readSource(path, cfg.MaxSourceBytes)
			if err != nil {
				return err
			}

			result := Run(source, cfg, nil)
			result.Name = path
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readSource(path string, limit int) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("os.Stat(%q): %w", path, err)
	}
	if info.Size() > int64(limit) {
		return "", fmt.Errorf("%s: source is %d bytes, limit is %d", path, info.Size(), limit)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%q): %w", path, err)
	}
	return string(b), nil
}
