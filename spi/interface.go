// Package spi translates logical BME280 register accesses into chip-select
// framed transactions on a duplex SPI bus.
package spi

import (
	"context"

	"github.com/mklimuk/bme280"
)

var _ bme280.Interface = &Interface{}

// Interface frames every register access as assert select, one or two duplex
// transfers, deassert select. It owns the bus and pin handles exclusively for
// its lifetime; no other component may drive them while it exists.
//
// Failure handling is asymmetric on purpose: when a transfer fails
// mid-transaction the select line is left asserted and no further pin
// operation is attempted, so a shared bus must be considered claimed until
// the next successful transaction. Pin failures and fully successful
// transactions always leave the line deasserted.
type Interface struct {
	bus bme280.SPIBus
	cs  bme280.ChipSelectPin
}

// NewInterface composes the bus and pin handles into a register interface.
// The chip-select line is forced high before the first transaction; a pin
// failure aborts construction.
func NewInterface(ctx context.Context, bus bme280.SPIBus, cs bme280.ChipSelectPin) (*Interface, error) {
	if err := cs.Set(ctx, true); err != nil {
		return nil, &bme280.BusError{Err: &PinError{Err: err}}
	}
	return &Interface{bus: bus, cs: cs}, nil
}

// Release hands the underlying handles back to the caller. The interface
// must not be used afterwards; the bus can be reused for a different device.
func (i *Interface) Release() (bme280.SPIBus, bme280.ChipSelectPin) {
	return i.bus, i.cs
}

// ReadRegister reads a single register byte.
func (i *Interface) ReadRegister(ctx context.Context, register byte) (byte, error) {
	var result [1]byte
	if err := i.readAnyRegister(ctx, register, result[:]); err != nil {
		return 0, err
	}
	return result[0], nil
}

// ReadData reads the raw pressure/temperature/humidity sample block.
func (i *Interface) ReadData(ctx context.Context, register byte) ([bme280.DataLen]byte, error) {
	var data [bme280.DataLen]byte
	if err := i.readAnyRegister(ctx, register, data[:]); err != nil {
		return [bme280.DataLen]byte{}, err
	}
	return data, nil
}

// ReadPTCalibData reads the pressure/temperature calibration block.
func (i *Interface) ReadPTCalibData(ctx context.Context, register byte) ([bme280.PTCalibLen]byte, error) {
	var data [bme280.PTCalibLen]byte
	if err := i.readAnyRegister(ctx, register, data[:]); err != nil {
		return [bme280.PTCalibLen]byte{}, err
	}
	return data, nil
}

// ReadHCalibData reads the humidity calibration block.
func (i *Interface) ReadHCalibData(ctx context.Context, register byte) ([bme280.HCalibLen]byte, error) {
	var data [bme280.HCalibLen]byte
	if err := i.readAnyRegister(ctx, register, data[:]); err != nil {
		return [bme280.HCalibLen]byte{}, err
	}
	return data, nil
}

// WriteRegister writes a single register byte. The address and payload are
// clocked out in one continuous transfer inside a single select frame.
func (i *Interface) WriteRegister(ctx context.Context, register byte, payload byte) error {
	if err := i.cs.Set(ctx, false); err != nil {
		return &bme280.BusError{Err: &PinError{Err: err}}
	}
	// bit 7 low marks a write on the wire
	transfer := [2]byte{register & 0x7F, payload}
	if err := i.bus.Transfer(ctx, transfer[:]); err != nil {
		return &bme280.BusError{Err: &TransferError{Err: err}}
	}
	if err := i.cs.Set(ctx, true); err != nil {
		return &bme280.BusError{Err: &PinError{Err: err}}
	}
	return nil
}

// readAnyRegister clocks out the register address, then clocks the payload
// into data. The device ignores the echoed bytes of both transfers. On a
// transfer error the select line stays asserted (see the type comment).
func (i *Interface) readAnyRegister(ctx context.Context, register byte, data []byte) error {
	if err := i.cs.Set(ctx, false); err != nil {
		return &bme280.BusError{Err: &PinError{Err: err}}
	}
	address := [1]byte{register}
	if err := i.bus.Transfer(ctx, address[:]); err != nil {
		return &bme280.BusError{Err: &TransferError{Err: err}}
	}
	if err := i.bus.Transfer(ctx, data); err != nil {
		return &bme280.BusError{Err: &TransferError{Err: err}}
	}
	if err := i.cs.Set(ctx, true); err != nil {
		return &bme280.BusError{Err: &PinError{Err: err}}
	}
	return nil
}
