package adapter

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/karalabe/hid"

	"github.com/mklimuk/bme280"
	"github.com/mklimuk/bme280/cmd/bme280/console"
)

const VendorID = 0x04D8
const ProductID = 0x00DE

// command codes (per datasheet)
const (
	cmdTransferSPI  byte = 0x42
	cmdSetGPIOValue byte = 0x30
	cmdGetGPIOValue byte = 0x31
)

// engine status codes returned in the second response byte
const (
	statusOK         byte = 0x00
	statusBusUnavail byte = 0xF7
	statusInProgress byte = 0xF8
)

// one HID report carries at most 60 bytes of SPI payload
const spiChunkLen = 60

var ErrCommandFailed = errors.New("command failed")
var ErrBusUnavailable = errors.New("SPI bus owned by an external master")
var ErrTransferInProgress = errors.New("SPI transfer in progress (command not completed)")

var _ bme280.SPIBus = &MCP2210{}
var _ bme280.ChipSelectPin = &MCP2210{}

// MCP2210 drives a Microchip USB-to-SPI bridge over raw HID reports. It
// exposes the duplex transfer capability and, through one of the GP pins in
// GPIO designation, the chip-select capability, so a single bridge can serve
// both handles of a sensor.
type MCP2210 struct {
	mx           sync.Mutex
	request      []byte
	response     []byte
	responseWait time.Duration
	csPin        uint
	gpioValues   uint16
}

// NewMCP2210 returns a bridge using the given GP pin (0-8) as chip-select.
// The pin must be configured for GPIO designation and output direction in
// the chip's power-up settings.
func NewMCP2210(csPin uint) *MCP2210 {
	return &MCP2210{
		request:      make([]byte, 64),
		response:     make([]byte, 64),
		responseWait: 50 * time.Millisecond,
		csPin:        csPin,
		// all GP pins are high after reset
		gpioValues: 0x01FF,
	}
}

func (d *MCP2210) Transfer(ctx context.Context, buffer []byte) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	if len(buffer) > spiChunkLen {
		return fmt.Errorf("transfer of %d bytes exceeds the %d byte report limit", len(buffer), spiChunkLen)
	}
	d.resetBuffers()
	d.request[0] = cmdTransferSPI
	d.request[1] = byte(len(buffer))
	copy(d.request[4:], buffer)
	err := d.send(ctx, true)
	if err != nil {
		return fmt.Errorf("spi transfer of %d bytes failed: %w", len(buffer), err)
	}
	switch d.response[1] {
	case statusOK:
	case statusBusUnavail:
		return ErrBusUnavailable
	case statusInProgress:
		console.Debug("adapter busy")
		return ErrTransferInProgress
	default:
		return fmt.Errorf("%w: status %#02x", ErrCommandFailed, d.response[1])
	}
	if int(d.response[2]) != len(buffer) {
		return fmt.Errorf("invalid data size byte; expected %d, got %d", len(buffer), d.response[2])
	}
	copy(buffer, d.response[4:4+len(buffer)])
	return nil
}

func (d *MCP2210) Set(ctx context.Context, high bool) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	if high {
		d.gpioValues |= 1 << d.csPin
	} else {
		d.gpioValues &^= 1 << d.csPin
	}
	d.resetBuffers()
	d.request[0] = cmdSetGPIOValue
	binary.LittleEndian.PutUint16(d.request[4:6], d.gpioValues)
	err := d.send(ctx, true)
	if err != nil {
		return fmt.Errorf("set GP pin values command write failed: %w", err)
	}
	if d.response[1] != statusOK {
		return ErrCommandFailed
	}
	return nil
}

// ReadGPIO returns the current GP pin value bitmask.
func (d *MCP2210) ReadGPIO(ctx context.Context, id ...int) (uint16, error) {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdGetGPIOValue
	err := d.send(ctx, true, id...)
	if err != nil {
		return 0, fmt.Errorf("read GP pin values command write failed: %w", err)
	}
	if d.response[1] != statusOK {
		return 0, ErrCommandFailed
	}
	return binary.LittleEndian.Uint16(d.response[4:6]), nil
}

func (d *MCP2210) send(ctx context.Context, response bool, id ...int) error {
	devs := hid.Enumerate(VendorID, ProductID)
	idx, err := deviceIndex(len(devs), id...)
	if err != nil {
		return err
	}
	dev, err := devs[idx].Open()
	if err != nil {
		return fmt.Errorf("error opening device: %w", err)
	}
	defer func() {
		_ = dev.Close()
	}()
	verbose := console.IsVerbose(ctx)
	if verbose {
		console.Printf("sending message to adapter:\n%s\n", hex.Dump(d.request))
	}
	n, err := dev.Write(d.request)
	if err != nil {
		return fmt.Errorf("could not write request: %w", err)
	}
	if n != 64 {
		return fmt.Errorf("short write: %d", n)
	}
	if !response {
		return nil
	}
	time.Sleep(d.responseWait)
	console.Debug("reading response from adapter")
	n, err = dev.Read(d.response)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}
	if n != 64 {
		return fmt.Errorf("short read: %d", n)
	}
	if verbose {
		console.Printf("read message from adapter:\n%s\n", hex.Dump(d.response))
	}
	return nil
}

// deviceIndex resolves the optional device id against the enumeration
// result. With several adapters attached an explicit id is required.
func deviceIndex(count int, id ...int) (int, error) {
	if count == 0 {
		return 0, fmt.Errorf("MCP2210 device not found")
	}
	if len(id) == 0 {
		if count > 1 {
			return 0, fmt.Errorf("ambiguous device identification")
		}
		return 0, nil
	}
	if id[0] < 0 || id[0] >= count {
		return 0, fmt.Errorf("no device with id %d", id[0])
	}
	return id[0], nil
}

func (d *MCP2210) resetBuffers() {
	resetBuffer(d.request)
	resetBuffer(d.response)
}

func resetBuffer(buf []byte) {
	for i := 0; i < len(buf)-1; i++ {
		buf[i] = 0x00
	}
}
