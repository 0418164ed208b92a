//go:build cli
// +build cli

package main

import (
	_ "primos.GO/custom"

	"primos.GO/cmd"
	"primos.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
