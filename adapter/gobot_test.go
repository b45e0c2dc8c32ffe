package adapter

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gobot.io/x/gobot/v2/drivers/spi"
)

type spiConnectionStub struct {
	commands [][]byte
	response []byte
	err      error
	closed   bool
}

func (c *spiConnectionStub) ReadCommandData(command []byte, data []byte) error {
	tx := make([]byte, len(command))
	copy(tx, command)
	c.commands = append(c.commands, tx)
	if c.err != nil {
		return c.err
	}
	copy(data, c.response)
	return nil
}

func (c *spiConnectionStub) ReadBlockData(reg byte, data []byte) error  { return nil }
func (c *spiConnectionStub) ReadByteData(reg byte) (byte, error)        { return 0, nil }
func (c *spiConnectionStub) WriteBlockData(reg byte, data []byte) error { return nil }
func (c *spiConnectionStub) WriteByteData(reg byte, val byte) error     { return nil }
func (c *spiConnectionStub) WriteByte(val byte) error                   { return nil }
func (c *spiConnectionStub) WriteBytes(data []byte) error               { return nil }
func (c *spiConnectionStub) Close() error {
	c.closed = true
	return nil
}

type spiConnectorStub struct {
	connection *spiConnectionStub
	err        error

	busNum   int
	chipNum  int
	mode     int
	bits     int
	maxSpeed int64
}

func (c *spiConnectorStub) GetSpiConnection(busNum, chipNum, mode, bits int, maxSpeed int64) (spi.Connection, error) {
	c.busNum, c.chipNum, c.mode, c.bits, c.maxSpeed = busNum, chipNum, mode, bits, maxSpeed
	if c.err != nil {
		return nil, c.err
	}
	return c.connection, nil
}

func (c *spiConnectorStub) SpiDefaultBusNumber() int  { return 0 }
func (c *spiConnectorStub) SpiDefaultChipNumber() int { return 0 }
func (c *spiConnectorStub) SpiDefaultMode() int       { return 0 }
func (c *spiConnectorStub) SpiDefaultBitCount() int   { return 8 }
func (c *spiConnectorStub) SpiDefaultMaxSpeed() int64 { return 500_000 }

func TestGobotBus_Transfer(t *testing.T) {
	connection := &spiConnectionStub{response: []byte{0x60, 0x00}}
	connector := &spiConnectorStub{connection: connection}
	bus := NewGobotBus(connector, 1)
	require.NoError(t, bus.Start())

	buffer := []byte{0xD0, 0x00}
	require.NoError(t, bus.Transfer(context.Background(), buffer))

	assert.Equal(t, []byte{0x60, 0x00}, buffer, "buffer should hold the clocked-in bytes")
	require.Len(t, connection.commands, 1)
	assert.Equal(t, []byte{0xD0, 0x00}, connection.commands[0], "original buffer should be clocked out")
}

func TestGobotBus_StartOpensConfiguredBus(t *testing.T) {
	connector := &spiConnectorStub{connection: &spiConnectionStub{}}
	bus := NewGobotBus(connector, 3)
	require.NoError(t, bus.Start())

	assert.Equal(t, 3, connector.busNum)
	assert.Equal(t, 0, connector.chipNum)
	assert.Equal(t, 0, connector.mode, "sensor requires SPI mode 0")
	assert.Equal(t, 8, connector.bits)
	assert.Equal(t, int64(5_000_000), connector.maxSpeed)
}

func TestGobotBus_TransferBeforeStart(t *testing.T) {
	bus := NewGobotBus(&spiConnectorStub{}, 0)
	err := bus.Transfer(context.Background(), []byte{0xD0, 0x00})
	assert.Error(t, err)
}

func TestGobotBus_StartFailure(t *testing.T) {
	connector := &spiConnectorStub{err: fmt.Errorf("no such bus")}
	bus := NewGobotBus(connector, 7)
	err := bus.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus 7")
}

func TestGobotBus_TransferFailure(t *testing.T) {
	connection := &spiConnectionStub{err: fmt.Errorf("io failure")}
	bus := NewGobotBus(&spiConnectorStub{connection: connection}, 0)
	require.NoError(t, bus.Start())
	err := bus.Transfer(context.Background(), []byte{0xF7})
	assert.Error(t, err)
}

func TestGobotBus_Halt(t *testing.T) {
	connection := &spiConnectionStub{}
	bus := NewGobotBus(&spiConnectorStub{connection: connection}, 0)

	assert.NoError(t, bus.Halt(), "halt before start should be a no-op")

	require.NoError(t, bus.Start())
	require.NoError(t, bus.Halt())
	assert.True(t, connection.closed)
}
