// Command lumac compiles Luma source files to WebAssembly.
package main

import (
	"os"

	"github.com/lumascript/lumac/cmd/lumac/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
