// Package main is the entry point for the seekr CLI tool.
package main

import (
	"github.com/seekr-dev/seekr/internal/cmd"
)

func main() {
	cmd.Execute()
}
