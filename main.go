package main

import (
	"github.com/packmod/packmod/cmd"

	// Modules of packmod
	_ "github.com/packmod/packmod/utils"
)

func main() {
	cmd.Execute()
}
