package bme280

import "fmt"

var ErrCalibrationMissing = fmt.Errorf("calibration data not loaded, call Init first")
var ErrInvalidData = fmt.Errorf("sensor returned invalid data")
var ErrUnsupportedChip = fmt.Errorf("unexpected chip id")

// BusError marks a failure that originated below the driver, in the bus or
// pin capability. The wrapped error identifies which capability failed and
// carries its native error value.
type BusError struct {
	Err error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("bus failure: %s", e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}
