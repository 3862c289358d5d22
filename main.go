// Copyright
// SPDX-License-Identifier: MIT
// artlens: compare a reference image against a render in the terminal
package main

import (
	"fmt"
	"os"
)

const Version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
