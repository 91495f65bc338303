package main

import (
	"os"

	"github.com/mark-chris/threatmap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
