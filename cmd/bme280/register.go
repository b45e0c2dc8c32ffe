package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/mklimuk/bme280/cmd/bme280/console"
	"github.com/mklimuk/bme280/spi"
)

var idCmd = cli.Command{
	Name:  "id",
	Usage: "read the chip identification register",
	Flags: adapterFlags,
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))

		bus, pin, err := handles(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		iface, err := spi.NewInterface(ctx, bus, pin)
		if err != nil {
			return console.Exit(1, "interface construction error: %s", console.Red(err))
		}
		// chip id lives at 0xD0; a BME280 answers 0x60
		id, err := iface.ReadRegister(ctx, 0xD0)
		if err != nil {
			return console.Exit(1, "error reading chip id: %s", console.Red(err))
		}
		console.PInfof(console.PictoPin, "chip id: %#02x", id)
		return nil
	},
}

var resetCmd = cli.Command{
	Name:  "reset",
	Usage: "soft-reset the sensor to its power-on state",
	Flags: adapterFlags,
	Action: func(c *cli.Context) error {
		answer, err := console.YesOrNo("soft-reset the sensor?")
		if err != nil {
			return console.Exit(1, "could not read answer: %s", console.Red(err))
		}
		if answer != console.Yes {
			console.PInfof(console.PictoStop, "aborted")
			return nil
		}
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))

		bus, pin, err := handles(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		iface, err := spi.NewInterface(ctx, bus, pin)
		if err != nil {
			return console.Exit(1, "interface construction error: %s", console.Red(err))
		}
		// writing 0xB6 to 0xE0 triggers the reset sequence
		if err := iface.WriteRegister(ctx, 0xE0, 0xB6); err != nil {
			return console.Exit(1, "error resetting sensor: %s", console.Red(err))
		}
		console.PInfof(console.PictoFinish, "sensor reset")
		return nil
	},
}
