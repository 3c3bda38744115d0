package main

import (
	"os"

	"github.com/consensus-score/deployer/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
