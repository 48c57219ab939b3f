package main

import (
	"os"

	"github.com/dariusconca170-prog/turboget-bridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
