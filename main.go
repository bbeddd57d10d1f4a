package main

import (
	"os"

	"github.com/rbergstrom/mapview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
