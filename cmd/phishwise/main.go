package main

import (
	"os"

	"github.com/phishwise/phishwise/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
