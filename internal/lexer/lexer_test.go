package lexer

import "testing"

func TestTokenizeFunction(t *testing.T) {
	input := `func add(a: i32, b: i32) -> i32 { return a + b; }`
	tokens, errs := Tokenize(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}

	want := []TokenType{
		FUNC, IDENT, LPAREN, IDENT, COLON, I32, COMMA, IDENT, COLON, I32, RPAREN,
		ARROW, I32, LBRACE, RETURN, IDENT, PLUS, IDENT, SEMICOLON, RBRACE, EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d: got %s, want %s", i, tokens[i].Type, typ)
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, errs := Tokenize("let\nx: i32")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 1 {
		t.Errorf("'let' position = %+v, want line 1 col 1", tokens[0].Pos)
	}
	if tokens[1].Pos.Line != 2 || tokens[1].Pos.Column != 1 {
		t.Errorf("'x' position = %+v, want line 2 col 1", tokens[1].Pos)
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens, errs := Tokenize(`"a\nb\"c"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if tokens[0].Type != STRING {
		t.Fatalf("got %s, want STRING", tokens[0].Type)
	}
	if tokens[0].Literal != "a\nb\"c" {
		t.Errorf("got %q, want %q", tokens[0].Literal, "a\nb\"c")
	}
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	_, errs := Tokenize("let x = $;")
	if len(errs) == 0 {
		t.Fatal("expected a LexError for '$'")
	}
}

func TestTokenizePointerSyntax(t *testing.T) {
	tokens, errs := Tokenize("ptr<i32>")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []TokenType{PTR, LT, I32, GT, EOF}
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d: got %s, want %s", i, tokens[i].Type, typ)
		}
	}
}
