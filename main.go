// Package main is the entry point for the nimbus application.
package main

import "github.com/billie-coop/nimbus/internal/cli"

func main() {
	cli.Execute()
}
