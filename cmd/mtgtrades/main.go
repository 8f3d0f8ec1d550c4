package main

import (
	"os"

	"github.com/rustyeddy/mtgtrades/cmd/mtgtrades/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
