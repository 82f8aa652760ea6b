package main

import (
	"github.com/talchemy/logoforge/cmd"
)

func main() {
	cmd.Execute()
}
