package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumascript/lumac/internal/cache"
	"github.com/lumascript/lumac/internal/config"
	"github.com/lumascript/lumac/pkg/compiler"
	"github.com/spf13/cobra"
)

var (
	outputFile string
	noCache    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a Luma source file to a WebAssembly module",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.wasm)")
	compileCmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the on-disk compilation cache")
}

func runCompile(_ *cobra.Command, args []string) error {
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

	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".wasm"
		} else {
			outFile = filename + ".wasm"
		}
	}

	if err := os.WriteFile(outFile, wasm, 0o644); err != nil {
		return wrapIOError(fmt.Errorf("writing %s: %w", outFile, err))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiled %s -> %s (%d bytes)\n", filename, outFile, len(wasm))
	} else {
		fmt.Printf("%s -> %s\n", filename, outFile)
	}
	return nil
}

// compileWithCache serves filename's WASM bytes from the on-disk cache when
// cfg.CacheDir is set and the content/mtime-derived key still has a
// non-expired entry, recompiling and repopulating the cache otherwise.
func compileWithCache(filename string, cfg *config.Config) ([]byte, error) {
	if noCache || cfg.CacheDir == "" {
		return compileFile(filename)
	}

	c, err := cache.Open(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	key, err := cache.Key(filename)
	if err != nil {
		return nil, err
	}

	if wasm, ok := c.Get(key); ok {
		if verbose {
			fmt.Fprintf(os.Stderr, "cache hit for %s\n", filename)
		}
		return wasm, nil
	}

	wasm, err := compileFile(filename)
	if err != nil {
		return nil, err
	}
	if err := c.Put(key, wasm); err != nil {
		return nil, err
	}
	return wasm, nil
}

func compileFile(filename string) ([]byte, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, wrapIOError(fmt.Errorf("reading %s: %w", filename, err))
	}
	result, err := compiler.Compile(string(content), filename)
	if err != nil {
		return nil, err
	}
	return result.Wasm, nil
}
