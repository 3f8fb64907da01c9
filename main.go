// Package main is the entry point for the termite CLI.
package main

import "termite.dev/pkg/termite/cmd"

func main() {
	cmd.Execute()
}
