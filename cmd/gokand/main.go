package main

import (
	"os"

	"github.com/evdnx/gokand/cmd/gokand/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
