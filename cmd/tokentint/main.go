// Tokentint - Perceptual colour decisions and state tokens
//
// Tokentint derives interaction-state colour tokens from a base colour in the
// OKLCH space, each carrying the quality, confidence and reason behind it.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/tokentint/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
