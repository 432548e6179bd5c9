package cmd

import (
	"fmt"
	"os"

	"github.com/lumascript/lumac/internal/wasmdecoder"
	"github.com/spf13/cobra"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.wasm>",
	Short: "Decode a WebAssembly module and print its section structure",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "text", "output format: text or yaml")
}

func runInspect(_ *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return wrapIOError(fmt.Errorf("reading %s: %w", filename, err))
	}

	module, err := wasmdecoder.Decode(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("decoding failed")
	}

	if inspectFormat == "yaml" {
		out, err := wasmdecoder.Dump(module)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	printModule(module)
	return nil
}

func printModule(m *wasmdecoder.Module) {
	fmt.Printf("types: %d\n", len(m.TypeSection))
	for i, t := range m.TypeSection {
		fmt.Printf("  [%d] params=%v result=%v\n", i, t.Params, t.Result)
	}
	fmt.Printf("functions: %v\n", m.FunctionSection)
	fmt.Printf("memories:\n")
	for _, mem := range m.MemorySection {
		fmt.Printf("  min=%d max=%d\n", mem.Min, mem.Max)
	}
	fmt.Printf("exports:\n")
	for _, e := range m.ExportSection {
		fmt.Printf("  %q -> function %d\n", e.Name, e.Index)
	}
	fmt.Printf("code: %d function bodies\n", len(m.CodeSection))
	for i, c := range m.CodeSection {
		fmt.Printf("  [%d] locals=%v instruction_bytes=%d\n", i, c.Locals, len(c.Instructions))
	}
}
