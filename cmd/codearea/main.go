// Command codearea edits and inspects source files in the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "codearea:", err)
		os.Exit(1)
	}
}
