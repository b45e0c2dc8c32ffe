package adapter

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/mklimuk/bme280"
)

var _ bme280.SPIBus = &PeriphBus{}
var _ bme280.ChipSelectPin = &PeriphPin{}

// PeriphBus exposes a periph.io SPI port as a duplex transfer capability.
// The port's own chip-select is not used; framing is driven externally
// through a PeriphPin.
type PeriphBus struct {
	port spi.PortCloser
	conn spi.Conn
}

// NewPeriphBus opens the SPI port registered under dev (e.g. "/dev/spidev0.0"
// or "SPI0.0") in mode 0 at 10MHz, the sensor's maximum clock.
func NewPeriphBus(dev string) (*PeriphBus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	port, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("could not open spi port: %w", err)
	}
	conn, err := port.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("could not configure spi port: %w", err)
	}
	return &PeriphBus{port: port, conn: conn}, nil
}

func (b *PeriphBus) Transfer(ctx context.Context, buffer []byte) error {
	// Tx needs separate write and read views of the same bytes
	tx := make([]byte, len(buffer))
	copy(tx, buffer)
	if err := b.conn.Tx(tx, buffer); err != nil {
		return fmt.Errorf("could not transfer %d bytes over spi: %w", len(buffer), err)
	}
	return nil
}

func (b *PeriphBus) Close() error {
	return b.port.Close()
}

// PeriphPin exposes a periph.io GPIO output as a chip-select capability.
type PeriphPin struct {
	pin gpio.PinOut
}

// NewPeriphPin resolves a GPIO pin by name (e.g. "GPIO25").
func NewPeriphPin(name string) (*PeriphPin, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("could not init host: %w", err)
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("unknown gpio pin %q", name)
	}
	return &PeriphPin{pin: pin}, nil
}

func (p *PeriphPin) Set(ctx context.Context, high bool) error {
	if err := p.pin.Out(gpio.Level(high)); err != nil {
		return fmt.Errorf("could not set gpio pin %s: %w", p.pin.Name(), err)
	}
	return nil
}
