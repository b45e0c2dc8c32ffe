package main

import (
	"context"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mklimuk/bme280"
	"github.com/mklimuk/bme280/adapter"
	"github.com/mklimuk/bme280/cmd/bme280/console"
	"github.com/mklimuk/bme280/spi"
)

var adapterFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Usage:   "bus adapter (periph or mcp2210)",
		Value:   "periph",
	},
	&cli.StringFlag{
		Name:    "port",
		Aliases: []string{"p"},
		Usage:   "spi port name for the periph adapter",
		Value:   "SPI0.0",
	},
	&cli.StringFlag{
		Name:  "cs-pin",
		Usage: "chip-select gpio name for the periph adapter",
		Value: "GPIO25",
	},
	&cli.UintFlag{
		Name:  "cs-gp",
		Usage: "chip-select GP pin index for the mcp2210 adapter",
	},
	&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
}

// handles resolves the bus and chip-select capabilities from the CLI flags.
func handles(c *cli.Context) (bme280.SPIBus, bme280.ChipSelectPin, error) {
	switch c.String("adapter") {
	case "mcp2210":
		bridge := adapter.NewMCP2210(c.Uint("cs-gp"))
		return bridge, bridge, nil
	default:
		bus, err := adapter.NewPeriphBus(c.String("port"))
		if err != nil {
			return nil, nil, err
		}
		pin, err := adapter.NewPeriphPin(c.String("cs-pin"))
		if err != nil {
			return nil, nil, err
		}
		return bus, pin, nil
	}
}

var measureCmd = cli.Command{
	Name:    "measure",
	Aliases: []string{"read"},
	Usage:   "capture one compensated temperature/pressure/humidity reading",
	Flags: append(adapterFlags,
		&cli.BoolFlag{Name: "yaml", Usage: "print the reading as yaml"},
	),
	Action: func(c *cli.Context) error {
		ctx := console.SetVerbose(context.Background(), c.Bool("verbose"))

		bus, pin, err := handles(c)
		if err != nil {
			return console.Exit(1, "adapter initialization error: %s", console.Red(err))
		}
		dev, err := spi.New(ctx, bus, pin, bme280.SystemDelayer)
		if err != nil {
			return console.Exit(1, "sensor construction error: %s", console.Red(err))
		}
		if err := dev.Init(ctx); err != nil {
			return console.Exit(1, "sensor initialization error: %s", console.Red(err))
		}
		m, err := dev.Measure(ctx)
		if err != nil {
			return console.Exit(1, "error getting sensor read: %s", console.Red(err))
		}
		if c.Bool("yaml") {
			out, err := yaml.Marshal(m)
			if err != nil {
				return console.Exit(1, "could not marshal reading: %s", console.Red(err))
			}
			console.Print(string(out))
			return nil
		}
		console.Printf("%s  %s°C\n%s %shPa\n%s %s%%\n",
			console.PictoThermometer, console.White(m.Temperature),
			console.PictoPressure, console.White(m.Pressure/100),
			console.PictoHumidity, console.White(m.Humidity))
		return nil
	},
}
