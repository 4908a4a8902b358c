package main

import (
	"fmt"
	"os"

	"github.com/deckops/deck/pkg/api"
	"github.com/deckops/deck/pkg/helpers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	s, err := api.New()
	if err != nil {
		return err
	}

	return s.Listen("https", fmt.Sprintf(":%s", helpers.CoalesceString(os.Getenv("PORT"), "5443")))
}
