package main

import (
	"os"

	"github.com/arena-engineering/arenactl/cmd"
	"github.com/arena-engineering/arenactl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
