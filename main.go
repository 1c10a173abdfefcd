package main

import (
	"os"

	"github.com/rayaq-siddiqui/snake-rl/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
