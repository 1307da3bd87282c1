package main

import (
	"os"

	"github.com/halcyonpartners/backdrop/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
