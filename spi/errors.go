package spi

import "fmt"

// TransferError reports a failure of the underlying duplex transfer. The
// native error of the bus implementation is carried unchanged.
type TransferError struct {
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("spi transfer failed: %s", e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// PinError reports a failure of the chip-select pin driver. The native error
// of the pin implementation is carried unchanged.
type PinError struct {
	Err error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("chip-select pin failed: %s", e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}
