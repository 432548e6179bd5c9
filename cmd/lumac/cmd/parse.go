package cmd

import (
	"fmt"
	"os"

	"github.com/lumascript/lumac/pkg/compiler"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Luma source file and print the resulting AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return wrapIOError(fmt.Errorf("reading %s: %w", filename, err))
	}

	program, err := compiler.Parse(string(content), filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("parsing failed")
	}

	fmt.Print(program.String())
	return nil
}
