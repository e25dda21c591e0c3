package main

import (
	"os"

	"github.com/rh-rosa-lab/rosactl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
