package lexer

import (
	"testing"

	"github.com/mindscript-lang/mindscript/internal/token"
)

func TestNextTokenPunctuation(t *testing.T) {
	input := `let x = {a: 1, b?: "y"} [Int] function(n: Int) -> Int?::(1, 2) ...`

	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN,
		token.LBRACE, token.IDENT, token.COLON, token.INT, token.COMMA,
		token.IDENT, token.QUESTION, token.COLON, token.STRING, token.RBRACE,
		token.LBRACKET, token.TYPEID, token.RBRACKET,
		token.FUNCTION, token.LPAREN, token.IDENT, token.COLON, token.TYPEID, token.RPAREN,
		token.ARROW, token.TYPEID, token.QUESTION, token.COLONCOLON,
		token.LPAREN, token.INT, token.COMMA, token.INT, token.RPAREN,
		token.DOTS,
		token.EOF,
	}

	l := New(input)
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token[%d] = %s (%q), want %s", i, tok.Type, tok.Lexeme, wantType)
		}
	}
}

func TestNextTokenKeywordsAndIdentKind(t *testing.T) {
	l := New("let age = null true false Any Array Object Money")
	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.NULL, token.BOOL, token.BOOL,
		token.TYPEID, token.TYPEID, token.TYPEID, token.TYPEID, token.EOF,
	}
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token[%d] = %s (%q), want %s", i, tok.Type, tok.Lexeme, wantType)
		}
	}
}

func TestNextTokenNumbers(t *testing.T) {
	l := New("42 3.14 0")
	tok := l.NextToken()
	if tok.Type != token.INT || tok.Literal.(int64) != 42 {
		t.Errorf("got %v, want INT 42", tok)
	}
	tok = l.NextToken()
	if tok.Type != token.FLOAT || tok.Literal.(float64) != 3.14 {
		t.Errorf("got %v, want FLOAT 3.14", tok)
	}
	tok = l.NextToken()
	if tok.Type != token.INT || tok.Literal.(int64) != 0 {
		t.Errorf("got %v, want INT 0", tok)
	}
}

func TestNextTokenStringEscapes(t *testing.T) {
	l := New(`"hello\nworld" "a\"b"`)
	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Literal.(string) != "hello\nworld" {
		t.Errorf("got %v, want STRING hello\\nworld", tok)
	}
	tok = l.NextToken()
	if tok.Type != token.STRING || tok.Literal.(string) != `a"b` {
		t.Errorf("got %v, want STRING a\"b", tok)
	}
}

func TestNextTokenUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Errorf("got %v, want ILLEGAL", tok)
	}
}

func TestNextTokenComments(t *testing.T) {
	l := New("x = 1 // a trailing comment\ny = 2")
	var got []token.Type
	for {
		tok := l.NextToken()
		got = append(got, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	want := []token.Type{
		token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
		token.IDENT, token.ASSIGN, token.INT,
		token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
