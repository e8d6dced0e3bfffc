package main

import (
	"log"

	"github.com/nordvolt/gridcore/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
