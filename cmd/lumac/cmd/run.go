package cmd

import (
	"fmt"
	"os"

	"github.com/lumascript/lumac/internal/config"
	"github.com/lumascript/lumac/internal/wasmdecoder"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile a Luma source file and report its module structure",
	Long: "Compiles the given source file and decodes the resulting module,\n" +
		"the way `inspect` would. lumac has no WASM execution engine, so this\n" +
		"stops at decode-and-report rather than actually running the module.",
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	filename := args[0]
	cfg, err := config.Load("lumac.yaml")
	if err != nil {
		return wrapIOError(err)
	}

	wasm, err := compileWithCache(filename, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("compilation failed")
	}

	module, err := wasmdecoder.Decode(wasm)
	if err != nil {
		return fmt.Errorf("decoding compiled output: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiled %s (%d bytes); no execution engine is embedded, reporting module structure instead:\n", filename, len(wasm))
	}
	printModule(module)
	return nil
}
