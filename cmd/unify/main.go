package main

import (
	"os"

	"github.com/unifylabs/unify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
