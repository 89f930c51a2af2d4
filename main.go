package main

import (
	"os"

	"github.com/ewhitt/promptlab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
