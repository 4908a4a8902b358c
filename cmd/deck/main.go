package main

import (
	"os"

	"github.com/deckops/deck/pkg/cli"
)

var (
	version = "dev"
)

func main() {
	c := cli.New("deck", version)

	os.Exit(c.Execute(os.Args[1:]))
}
