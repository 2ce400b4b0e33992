package main

import (
	"fmt"
	"os"

	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/alvarorichard/goshiro/internal/version"
)

func main() {
	if version.HasVersionArg() {
		version.ShowVersion()
		return
	}

	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, util.ErrorHandler(err))
		os.Exit(1)
	}
}
