// Package main is the entry point for the bluegem CLI.
package main

import (
	"github.com/donaldgifford/bluegem/cmd/bluegem/cmd"
)

func main() {
	cmd.Execute()
}
