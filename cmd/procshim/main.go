package main

import (
	"os"

	"github.com/charliek/procshim/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
