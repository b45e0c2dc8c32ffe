package bme280

import (
	"context"
	"time"
)

// Fixed payload lengths of the BME280 wire protocol.
const (
	// DataLen is the size of the raw pressure/temperature/humidity sample block.
	DataLen = 8
	// PTCalibLen is the size of the pressure/temperature calibration block
	// (includes the first humidity coefficient at its tail).
	PTCalibLen = 26
	// HCalibLen is the size of the humidity calibration block.
	HCalibLen = 7
)

// SPIBus is a duplex byte-transfer capability. Transfer overwrites buffer in
// place with the bytes clocked in while the original contents are clocked out.
type SPIBus interface {
	Transfer(ctx context.Context, buffer []byte) error
}

// ChipSelectPin drives the select line that frames every bus transaction.
// The line is active low: Set(ctx, false) asserts it.
type ChipSelectPin interface {
	Set(ctx context.Context, high bool) error
}

// Delayer waits for conversion and startup times. Implementations may ignore
// the requested resolution.
type Delayer interface {
	Sleep(d time.Duration)
}

// DelayerFunc adapts a plain function to the Delayer interface.
type DelayerFunc func(d time.Duration)

func (f DelayerFunc) Sleep(d time.Duration) { f(d) }

// SystemDelayer sleeps on the calling goroutine.
var SystemDelayer Delayer = DelayerFunc(time.Sleep)

// Interface is the register access surface the measurement engine depends on.
// Implementations translate logical register reads and writes into framed bus
// transactions; the engine stays agnostic of the underlying transport.
type Interface interface {
	ReadRegister(ctx context.Context, register byte) (byte, error)
	ReadData(ctx context.Context, register byte) ([DataLen]byte, error)
	ReadPTCalibData(ctx context.Context, register byte) ([PTCalibLen]byte, error)
	ReadHCalibData(ctx context.Context, register byte) ([HCalibLen]byte, error)
	WriteRegister(ctx context.Context, register byte, payload byte) error
}
