package main

import (
	"github.com/codeowners-bool/cli/cmd"
)

func main() {
	cmd.Execute()
}
