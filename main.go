package main

import (
	"os"

	"github.com/archadvisor/archadvisor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
