package cmd

import (
	"fmt"
	"os"

	"github.com/lumascript/lumac/internal/cerr"
	"github.com/lumascript/lumac/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexShowPos  bool
	lexShowType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Luma source file and print the resulting tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return wrapIOError(fmt.Errorf("reading %s: %w", filename, err))
	}

	tokens, errs := lexer.Tokenize(string(content))
	for _, tok := range tokens {
		printToken(tok)
	}

	if len(errs) > 0 {
		batch := make([]*cerr.CompilerError, len(errs))
		for i, e := range errs {
			batch[i] = cerr.New(e, string(content), filename)
		}
		fmt.Fprint(os.Stderr, cerr.FormatAll(batch, true))
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if lexShowType {
		out = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Literal == "" {
		out += fmt.Sprintf(" %s", tok.Type)
	} else {
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		out += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(out)
}
