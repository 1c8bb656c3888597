package main

import (
	"os"

	"github.com/smazurov/ledviz/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
