package main

import (
	"os"

	"github.com/AOSC-Dev/shipit-fleet/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
