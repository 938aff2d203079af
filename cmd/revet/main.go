package main

import (
	"os"

	"github.com/revetci/revet/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
