package main

import (
	"os"

	"github.com/mickamy/gotrap/cmd/gotrap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
