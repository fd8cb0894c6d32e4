package main

import (
	"fmt"
	"os"
)

// Set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "cookiekeeper: %s\n", err)
		os.Exit(1)
	}
}
