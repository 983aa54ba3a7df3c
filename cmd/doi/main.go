package main

import (
	"github.com/skhandal/doi/pkg/interfaces/cli/commands"
)

func main() {
	commands.Execute()
}
