package main

import (
	"os"

	"github.com/ngofund/ngoai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
