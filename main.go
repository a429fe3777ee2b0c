package main

import (
	"os"

	"github.com/stevengonsalvez/apppop-bootstrap/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
