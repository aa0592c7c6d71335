/*
 * Copyright © 2025 The cloudchat Authors, All rights reserved.
 */

// Command objecttypes inspects, compiles and publishes the cloudchat object
// type declaration.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
