package main

import (
	"os"

	"github.com/bnema/simpcity-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
