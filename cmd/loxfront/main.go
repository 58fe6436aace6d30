package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/lox-frontend/internal/ast"
	"github.com/karupanerura/lox-frontend/internal/config"
	"github.com/karupanerura/lox-frontend/internal/diagnostics"
	"github.com/karupanerura/lox-frontend/internal/frontend"
	"github.com/karupanerura/lox-frontend/internal/server"
	"github.com/karupanerura/lox-frontend/internal/token"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// exit codes follow sysexits.h
const (
	exitOK        = 0
	exitFailure   = 1
	exitDataError = 65
)

type Option struct {
	Files  []string `short:"f" long:"file" description:"[OPTIONAL] Source file (repeatable)" required:"false"`
	Expr   string   `short:"e" long:"expr" description:"[OPTIONAL] Source text" required:"false"`
	Mode   string   `short:"m" long:"mode" description:"[OPTIONAL] Parse mode" choice:"expression" choice:"program" required:"false"`
	Format string   `long:"format" description:"[OPTIONAL] Output format" choice:"sexpr" choice:"source" choice:"json" choice:"yaml" choice:"tokens" required:"false"`
	Config string   `short:"c" long:"config" description:"[OPTIONAL] Config file (YAML or JSON)" required:"false"`
	Listen string   `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve the scanner and parser over HTTP" required:"false"`
	Debug  bool     `long:"debug" description:"[OPTIONAL] Trace the scanner and the parser to stderr"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return exitOK
		} else {
			parser.WriteHelp(stdout)
			return exitFailure
		}
	}
	if opt.Expr != "" && len(opt.Files) != 0 {
		parser.WriteHelp(stdout)
		return exitFailure
	}

	cfg, err := loadConfig(&opt)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return exitFailure
	}

	// server mode
	if cfg.Listen != "" {
		if err := serve(cfg); err != nil {
			log.Printf("failed to serve: %v", err)
			return exitFailure
		}
		return exitOK
	}

	var results []*frontend.Result
	switch {
	case len(opt.Files) != 0:
		results, err = frontend.RunFiles(context.Background(), opt.Files, cfg)
		if err != nil {
			log.Printf("failed to read sources: %v", err)
			return exitFailure
		}
		for _, result := range results {
			for _, d := range result.Diagnostics {
				fmt.Fprintf(stderr, "%s: %s\n", result.Name, d.Error())
			}
		}

	default:
		source := opt.Expr
		if source == "" {
			b, err := io.ReadAll(io.LimitReader(stdin, int64(cfg.MaxSourceBytes)+1))
			if err != nil {
				log.Printf("failed to read stdin: %v", err)
				return exitFailure
			}
			if len(b) > cfg.MaxSourceBytes {
				log.Printf("source is larger than %d bytes", cfg.MaxSourceBytes)
				return exitFailure
			}
			source = string(b)
		}
		results = []*frontend.Result{frontend.Run(source, cfg, diagnostics.NewWriterReporter(stderr))}
	}

	for _, result := range results {
		if err := writeResult(stdout, cfg.Format, result); err != nil {
			log.Printf("failed to write result: %v", err)
			return exitFailure
		}
	}

	failed := lo.Filter(results, func(r *frontend.Result, _ int) bool {
		return r.Err() != nil
	})
	if len(failed) != 0 {
		return exitDataError
	}
	return exitOK
}

func loadConfig(opt *Option) (config.Config, error) {
	cfg := config.Default()
	if opt.Config != "" {
		var err error
		cfg, err = config.LoadFile(opt.Config)
		if err != nil {
			return config.Config{}, err
		}
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return config.Config{}, fmt.Errorf("config.ApplyEnv: %w", err)
	}

	if opt.Mode != "" {
		cfg.Mode = config.Mode(opt.Mode)
	}
	if opt.Format != "" {
		cfg.Format = config.Format(opt.Format)
	}
	if opt.Listen != "" {
		cfg.Listen = opt.Listen
	}
	if opt.Debug {
		cfg.Debug = true
	}
	return cfg, cfg.Validate()
}

// serve runs the HTTP front end until SIGINT or SIGTERM, then drains in-flight
// requests.
func serve(cfg config.Config) error {
	handler, err := server.NewHTTPHandler(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Handler:           handler,
		Addr:              cfg.Listen,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Printf("Listen HTTP on %s", cfg.Listen)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown: %w", err)
		}
		return nil
	})
	return eg.Wait()
}

func writeResult(w io.Writer, format config.Format, result *frontend.Result) error {
	var lines []string
	switch format {
	case config.TokensFormat:
		lines = lo.Map(result.Tokens, func(tok token.Token, _ int) string {
			return tok.String()
		})

	case config.SExprFormat:
		lines = append(lo.Map(result.Exprs, func(expr ast.Expr, _ int) string {
			return ast.Render(expr)
		}), lo.Map(result.Stmts, func(stmt ast.Stmt, _ int) string {
			return ast.RenderStmt(stmt)
		})...)

	case config.SourceFormat:
		lines = append(lo.Map(result.Exprs, func(expr ast.Expr, _ int) string {
			return ast.Format(expr)
		}), lo.Map(result.Stmts, func(stmt ast.Stmt, _ int) string {
			return ast.FormatStmt(stmt)
		})...)

	case config.JSONFormat:
		return dumpJSON(w, result)

	case config.YAMLFormat:
		return dumpYAML(w, result)

	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if len(lines) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}

// dumpJSON writes v tab-indented, colorized when w is a terminal.
func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok && isatty.IsTerminal(f.Fd()) {
		opts = append(opts, json.Colorize(json.DefaultColorScheme))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.EncodeWithOption(v, opts...); err != nil {
		return fmt.Errorf("enc.EncodeWithOption: %w", err)
	}
	return nil
}

func dumpYAML(w io.Writer, v any) error {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	yamlBytes, err := yaml.JSONToYAML(jsonBytes)
	if err != nil {
		return fmt.Errorf("yaml.JSONToYAML: %w", err)
	}

	if _, err = w.Write(yamlBytes); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	return nil
}
