package lexer

import "testing"

func tokenTypes(toks []Token) []TokenType {
	types := make([]TokenType, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func assertTypes(t *testing.T, got []Token, want []TokenType) {
	t.Helper()
	gotTypes := tokenTypes(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("got %v, want %v", gotTypes, want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, gotTypes[i], want[i])
		}
	}
}

func TestScanAssignment(t *testing.T) {
	toks, err := NewScanner("x = 5\n").ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTypes(t, toks, []TokenType{TokenIdentifier, TokenEqual, TokenInt, TokenEOLN, TokenEOS})
}

func TestScanKeywordsAndOperators(t *testing.T) {
	toks, err := NewScanner("while x <= 2 ** 3 % 4:\n").ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTypes(t, toks, []TokenType{
		TokenWhile, TokenIdentifier, TokenLTE, TokenInt, TokenPower, TokenInt,
		TokenPercent, TokenInt, TokenColon, TokenEOLN, TokenEOS,
	})
}

func TestScanStringLiteral(t *testing.T) {
	toks, err := NewScanner(`print("hello")` + "\n").ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[2].Type != TokenStr || toks[2].Lexeme != "hello" {
		t.Errorf("got %+v, want a Str token with lexeme \"hello\"", toks[2])
	}
}

func TestScanRealLiteral(t *testing.T) {
	toks, err := NewScanner("3.14\n").ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != TokenReal || toks[0].Lexeme != "3.14" {
		t.Errorf("got %+v, want a Real token 3.14", toks[0])
	}
}

func TestScanSlashIsNeverAComment(t *testing.T) {
	toks, err := NewScanner("x = 4 / 2\n").ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTypes(t, toks, []TokenType{TokenIdentifier, TokenEqual, TokenInt, TokenSlash, TokenInt, TokenEOLN, TokenEOS})
}

func TestScanUnterminatedStringErrors(t *testing.T) {
	_, err := NewScanner(`"no closing quote`).ScanTokens()
	if err == nil {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestScanBareBangErrors(t *testing.T) {
	_, err := NewScanner("x ! y\n").ScanTokens()
	if err == nil {
		t.Fatal("expected an error for a bare '!'")
	}
}

func TestScanAlwaysEndsWithEOS(t *testing.T) {
	toks, err := NewScanner("").ScanTokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Type != TokenEOS {
		t.Errorf("got %v, want a single EOS token", toks)
	}
}
