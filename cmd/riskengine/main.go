package main

import (
	"fmt"
	"os"

	"github.com/wonny/aegis-risk/cmd/riskengine/commands"
)

// main is the entry point for the risk engine CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/riskengine <returns.csv> <label>
func main() {
	err := commands.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(commands.ExitCode(err))
}
