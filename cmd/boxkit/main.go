// Command boxkit renders, traces and previews box layouts.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "boxkit:", err)
		os.Exit(1)
	}
}
