// Command mailcloud is a command-line client for the Customers Mail Cloud
// transactional email API.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mailcloud: %v\n", err)
		os.Exit(1)
	}
}
