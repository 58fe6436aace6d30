package scanner_test

import (
	"io"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/lox-frontend/internal/diagnostics"
	"github.com/karupanerura/lox-frontend/internal/scanner"
	"github.com/karupanerura/lox-frontend/internal/token"
)

func eof(line int) token.Token {
	return token.New(token.EOF, "", token.Absent, line)
}

func TestScanTokens(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name     string
		source   string
		expected []token.Token
		errors   []string
	}{
		{
			name:     "empty",
			source:   "",
			expected: []token.Token{eof(1)},
		},
		{
			name:   "addition statement",
			source: "2+2;",
			expected: []token.Token{
				token.New(token.Number, "2", token.NumberValue(2), 1),
				token.New(token.Plus, "+", token.Absent, 1),
				token.New(token.Number, "2", token.NumberValue(2), 1),
				token.New(token.Semicolon, ";", token.Absent, 1),
				eof(1),
			},
		},
		{
			name:   "single character tokens",
			source: "(){},.-+;*",
			expected: []token.Token{
				token.New(token.LeftParen, "(", token.Absent, 1),
				token.New(token.RightParen, ")", token.Absent, 1),
				token.New(token.LeftBrace, "{", token.Absent, 1),
				token.New(token.RightBrace, "}", token.Absent, 1),
				token.New(token.Comma, ",", token.Absent, 1),
				token.New(token.Dot, ".", token.Absent, 1),
				token.New(token.Minus, "-", token.Absent, 1),
				token.New(token.Plus, "+", token.Absent, 1),
				token.New(token.Semicolon, ";", token.Absent, 1),
				token.New(token.Star, "*", token.Absent, 1),
				eof(1),
			},
		},
		{
			name:   "one or two character tokens",
			source: "! != = == < <= > >= /",
			expected: []token.Token{
				token.New(token.Bang, "!", token.Absent, 1),
				token.New(token.BangEqual, "!=", token.Absent, 1),
				token.New(token.Equal, "=", token.Absent, 1),
				token.New(token.EqualEqual, "==", token.Absent, 1),
				token.New(token.Less, "<", token.Absent, 1),
				token.New(token.LessEqual, "<=", token.Absent, 1),
				token.New(token.Greater, ">", token.Absent, 1),
				token.New(token.GreaterEqual, ">=", token.Absent, 1),
				token.New(token.Slash, "/", token.Absent, 1),
				eof(1),
			},
		},
		{
			// lines count from 1, so the number after one newline sits on line 2
			name:   "comment then number on the second line",
			source: "// comment\n42",
			expected: []token.Token{
				token.New(token.Number, "42", token.NumberValue(42), 2),
				eof(2),
			},
		},
		{
			name:   "comment at end of input",
			source: "1 // trailing",
			expected: []token.Token{
				token.New(token.Number, "1", token.NumberValue(1), 1),
				eof(1),
			},
		},
		{
			name:   "numbers",
			source: "123 4.5 6.",
			expected: []token.Token{
				token.New(token.Number, "123", token.NumberValue(123), 1),
				token.New(token.Number, "4.5", token.NumberValue(4.5), 1),
				token.New(token.Number, "6", token.NumberValue(6), 1),
				token.New(token.Dot, ".", token.Absent, 1),
				eof(1),
			},
		},
		{
			name:   "leading dot is not part of number",
			source: ".5",
			expected: []token.Token{
				token.New(token.Dot, ".", token.Absent, 1),
				token.New(token.Number, "5", token.NumberValue(5), 1),
				eof(1),
			},
		},
		{
			name:   "string",
			source: `"hello world"`,
			expected: []token.Token{
				token.New(token.String, `"hello world"`, token.TextValue("hello world"), 1),
				eof(1),
			},
		},
		{
			name:   "multi-line string",
			source: "\"a\nb\" x",
			expected: []token.Token{
				token.New(token.String, "\"a\nb\"", token.TextValue("a\nb"), 2),
				token.New(token.Identifier, "x", token.Absent, 2),
				eof(2),
			},
		},
		{
			name:   "escaped quote",
			source: `"say \"hi\""`,
			expected: []token.Token{
				token.New(token.String, `"say \"hi\""`, token.TextValue(`say "hi"`), 1),
				eof(1),
			},
		},
		{
			name:   "identifiers and keywords",
			source: "and class else false fun for if nil or print return super this true var while _foo bar1 orchid",
			expected: []token.Token{
				token.New(token.And, "and", token.Absent, 1),
				token.New(token.Class, "class", token.Absent, 1),
				token.New(token.Else, "else", token.Absent, 1),
				token.New(token.False, "false", token.Absent, 1),
				token.New(token.Fun, "fun", token.Absent, 1),
				token.New(token.For, "for", token.Absent, 1),
				token.New(token.If, "if", token.Absent, 1),
				token.New(token.Nil, "nil", token.Absent, 1),
				token.New(token.Or, "or", token.Absent, 1),
				token.New(token.Print, "print", token.Absent, 1),
				token.New(token.Return, "return", token.Absent, 1),
				token.New(token.Super, "super", token.Absent, 1),
				token.New(token.This, "this", token.Absent, 1),
				token.New(token.True, "true", token.Absent, 1),
				token.New(token.Var, "var", token.Absent, 1),
				token.New(token.While, "while", token.Absent, 1),
				token.New(token.Identifier, "_foo", token.Absent, 1),
				token.New(token.Identifier, "bar1", token.Absent, 1),
				token.New(token.Identifier, "orchid", token.Absent, 1),
				eof(1),
			},
		},
		{
			name:   "whitespace and lines",
			source: " \t\r\n\n  x\n",
			expected: []token.Token{
				token.New(token.Identifier, "x", token.Absent, 3),
				eof(4),
			},
		},
		{
			name:     "unterminated string",
			source:   `"abc`,
			expected: []token.Token{eof(1)},
			errors:   []string{"[line 1] Error: Unterminated string."},
		},
		{
			name:   "unexpected character continues",
			source: "1 @ 2 #",
			expected: []token.Token{
				token.New(token.Number, "1", token.NumberValue(1), 1),
				token.New(token.Number, "2", token.NumberValue(2), 1),
				eof(1),
			},
			errors: []string{
				`[line 1] Error: Unexpected character '@'.`,
				`[line 1] Error: Unexpected character '#'.`,
			},
		},
		{
			name:   "multi-byte unexpected character is reported once",
			source: "a あ b",
			expected: []token.Token{
				token.New(token.Identifier, "a", token.Absent, 1),
				token.New(token.Identifier, "b", token.Absent, 1),
				eof(1),
			},
			errors: []string{`[line 1] Error: Unexpected character 'あ'.`},
		},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var collector diagnostics.Collector
			tokens := scanner.New(tt.source, scanner.WithReporter(&collector)).ScanTokens()
			if diff := cmp.Diff(tt.expected, tokens); diff != "" {
				t.Errorf("tokens mismatch (-want +got):\n%s", diff)
			}

			var messages []string
			for _, err := range collector.Errors() {
				messages = append(messages, err.Error())
			}
			if diff := cmp.Diff(tt.errors, messages); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanTokensIsIdempotent(t *testing.T) {
	t.Parallel()

	const source = "var x = (1 + 2.5) * \"s\";\n// c\nprint x != nil and !true;"
	first := scanner.New(source).ScanTokens()
	second := scanner.New(source).ScanTokens()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-scan mismatch (-first +second):\n%s", diff)
	}

	s := scanner.New(source)
	if diff := cmp.Diff(s.ScanTokens(), s.ScanTokens()); diff != "" {
		t.Errorf("same scanner re-scan mismatch:\n%s", diff)
	}
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	tokens := scanner.New(`1.5 "s" x`).ScanTokens()
	expected := []string{
		"TokenType: number, Lexeme: 1.5, Literal: 1.5",
		"TokenType: string, Lexeme: \"s\", Literal: s",
		"TokenType: identifier, Lexeme: x, Literal: nil",
		"TokenType: end of file, Lexeme: , Literal: nil",
	}
	for i, tok := range tokens {
		if got := tok.String(); got != expected[i] {
			t.Errorf("tokens[%d]: expect %q but got %q", i, expected[i], got)
		}
	}
}

func FuzzScanTokens(f *testing.F) {
	f.Add("2+2;")
	f.Add("\"abc")
	f.Add("var a = 1.5 // x\n!a")
	f.Fuzz(func(t *testing.T, source string) {
		tokens := scanner.New(source, scanner.WithReporter(diagnostics.Discard)).ScanTokens()
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
			t.Fatalf("missing EOF: %q", source)
		}
		for _, tok := range tokens[:len(tokens)-1] {
			if tok.Kind == token.EOF {
				t.Fatalf("EOF in the middle: %q", source)
			}
		}
		if diff := cmp.Diff(tokens, scanner.New(source, scanner.WithReporter(diagnostics.Discard)).ScanTokens()); diff != "" {
			t.Fatalf("not idempotent for %q:\n%s", source, diff)
		}
	})
}

func TestDefaultReporterWritesToStderr(t *testing.T) {
	// not parallel: swaps os.Stderr
	f, err := os.CreateTemp(t.TempDir(), "stderr")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	stderr := os.Stderr
	os.Stderr = f
	s := scanner.New("@")
	os.Stderr = stderr

	tokens := s.ScanTokens()
	if diff := cmp.Diff([]token.Token{eof(1)}, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	var messages []string
	for _, e := range s.Errors() {
		messages = append(messages, e.Error())
	}
	expected := []string{"[line 1] Error: Unexpected character '@'."}
	if diff := cmp.Diff(expected, messages); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if s.Err() == nil {
		t.Error("Err must report the unexpected character")
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	written, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(written); got != expected[0]+"\n" {
		t.Errorf("stderr: expect %q but got %q", expected[0]+"\n", got)
	}
}

func TestErrorsResetOnRescan(t *testing.T) {
	t.Parallel()

	s := scanner.New("\"abc", scanner.WithReporter(diagnostics.Discard))
	s.ScanTokens()
	s.ScanTokens()
	if errs := s.Errors(); len(errs) != 1 {
		t.Errorf("expect exactly one error after a re-scan but got %v", errs)
	}
}
