package main

import (
	"github.com/suma737/webharness/cmd"
)

// main is the entry point for the webharness CLI.
func main() {
	cmd.Execute()
}
