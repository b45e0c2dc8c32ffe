package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/bme280/adapter"
	"github.com/mklimuk/bme280/cmd/bme280/console"
)

var gpioCmd = cli.Command{
	Name:  "gpio",
	Usage: "read the MCP2210 GP pin values",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Usage:   "adapter id when several MCP2210 are attached",
		},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
	},
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))
		bridge := adapter.NewMCP2210(0)
		var id []int
		if c.IsSet("device") {
			id = append(id, c.Int("device"))
		}
		values, err := bridge.ReadGPIO(ctx, id...)
		if err != nil {
			return console.Exit(1, "could not read GP pin values: %s", console.Red(err))
		}
		console.PInfof(console.PictoPin, "GP pin values: %09b", values)
		for pin := 0; pin < 9; pin++ {
			level := "low"
			if values&(1<<pin) != 0 {
				level = "high"
			}
			console.Printf("GP%d: %s\n", pin, level)
		}
		return nil
	},
}
