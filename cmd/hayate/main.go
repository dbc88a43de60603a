package main

import (
	"github.com/shizukutanaka/Hayate/cmd/hayate/commands"
)

// Minimal entrypoint that delegates to the Cobra CLI defined in cmd/hayate/commands.
func main() {
	commands.Execute()
}
