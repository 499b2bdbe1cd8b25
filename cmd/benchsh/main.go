package main

import (
	"github.com/robotalks/benchmon/pkg/cli/sh"
	env "github.com/robotalks/benchmon/pkg/env/host"

	_ "github.com/robotalks/benchmon/pkg/cli/cmds/bench"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
