// Package main is the entry point for preroll.
package main

import (
	"github.com/preroll-cli/preroll/cmd"
	"github.com/preroll-cli/preroll/config"
	"github.com/preroll-cli/preroll/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
