package main

import (
	pricer "github.com/aouyang1/go-pricer"
	"github.com/urfave/cli/v2"
)

func inspectAction(c *cli.Context) error {
	return pricer.LoadModel(c.Path(flagModel)).TablePrint(c.App.Writer)
}
