package adapter

import (
	"context"
	"fmt"

	"gobot.io/x/gobot/v2/drivers/spi"

	"github.com/mklimuk/bme280"
)

var _ bme280.SPIBus = &GobotBus{}

// GobotBus exposes a gobot SPI connection as a duplex transfer capability,
// for boards supported through gobot adaptors rather than periph.io. The
// chip-select line still has to come from a separate pin capability.
type GobotBus struct {
	connector  spi.Connector
	connection spi.Connection
	busNum     int
}

// NewGobotBus binds the bus to a gobot SPI adaptor. busNum is the board's
// SPI bus number, matching its numbering. Start must be called before the
// first transfer.
func NewGobotBus(connector spi.Connector, busNum int) *GobotBus {
	return &GobotBus{connector: connector, busNum: busNum}
}

// Start opens the SPI connection on the configured bus. The chip number and
// bit count come from the adaptor defaults; mode and speed are fixed to the
// sensor's limits (mode 0, conservative 5 MHz of the allowed 10 MHz).
func (b *GobotBus) Start() error {
	connection, err := b.connector.GetSpiConnection(
		b.busNum,
		b.connector.SpiDefaultChipNumber(),
		0,
		b.connector.SpiDefaultBitCount(),
		5_000_000,
	)
	if err != nil {
		return fmt.Errorf("could not open spi connection on bus %d: %w", b.busNum, err)
	}
	b.connection = connection
	return nil
}

// Halt closes the SPI connection.
func (b *GobotBus) Halt() error {
	if b.connection == nil {
		return nil
	}
	return b.connection.Close()
}

func (b *GobotBus) Transfer(ctx context.Context, buffer []byte) error {
	if b == nil || b.connection == nil {
		return fmt.Errorf("spi connection not started")
	}
	// ReadCommandData is the closest full-duplex primitive the gobot
	// connection exposes: it clocks the buffer out while reading the same
	// number of bytes back.
	rx := make([]byte, len(buffer))
	if err := b.connection.ReadCommandData(buffer, rx); err != nil {
		return fmt.Errorf("could not transfer %d bytes over spi: %w", len(buffer), err)
	}
	copy(buffer, rx)
	return nil
}
