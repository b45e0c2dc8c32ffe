package bme280

import (
	"context"
	"fmt"
	"time"
)

// Register map (per datasheet). Addresses 0x80 and above keep their read
// marker bit naturally; writes get bit 7 cleared by the bus layer.
const (
	regChipID   byte = 0xD0
	regReset    byte = 0xE0
	regPTCalib  byte = 0x88
	regHCalib   byte = 0xE1
	regCtrlHum  byte = 0xF2
	regCtrlMeas byte = 0xF4
	regConfig   byte = 0xF5
	regData     byte = 0xF7
)

const (
	chipID       byte = 0x60
	cmdSoftReset byte = 0xB6
)

// ctrl_meas / ctrl_hum field values
const (
	oversampling1x byte = 0x01
	modeSleep      byte = 0x00
	modeForced     byte = 0x01
)

// startup time after reset is 2ms max per datasheet
const startupDelay = 2 * time.Millisecond

// conservative upper bound for a 1x/1x/1x forced conversion (typ. ~8ms)
const measurementDelay = 10 * time.Millisecond

// Device represents a BME280 combined temperature/pressure/humidity sensor.
// It drives the measurement cycle over an injected register Interface and is
// agnostic of the underlying bus. Typical usage:
//
//	dev := bme280.NewDevice(iface, bme280.SystemDelayer)
//	err := dev.Init(ctx)
//	m, err := dev.Measure(ctx)
type Device struct {
	iface       Interface
	delay       Delayer
	calibration *Calibration
	ctrlMeas    byte
}

func NewDevice(iface Interface, delay Delayer) *Device {
	return &Device{iface: iface, delay: delay}
}

// Init resets the sensor, verifies its identity, loads the factory
// calibration and configures oversampling. It must complete successfully
// before the first measurement.
func (d *Device) Init(ctx context.Context) error {
	if err := d.SoftReset(ctx); err != nil {
		return fmt.Errorf("could not reset sensor: %w", err)
	}
	id, err := d.ChipID(ctx)
	if err != nil {
		return fmt.Errorf("could not read chip id: %w", err)
	}
	if id != chipID {
		return fmt.Errorf("%w: %#02x", ErrUnsupportedChip, id)
	}
	if err := d.readCalibration(ctx); err != nil {
		return err
	}
	return d.configure(ctx)
}

// ChipID reads the sensor identification register.
func (d *Device) ChipID(ctx context.Context) (byte, error) {
	return d.iface.ReadRegister(ctx, regChipID)
}

// SoftReset restores the power-on state and waits out the startup time.
func (d *Device) SoftReset(ctx context.Context) error {
	if err := d.iface.WriteRegister(ctx, regReset, cmdSoftReset); err != nil {
		return fmt.Errorf("could not write reset command: %w", err)
	}
	d.delay.Sleep(startupDelay)
	return nil
}

func (d *Device) readCalibration(ctx context.Context) error {
	pt, err := d.iface.ReadPTCalibData(ctx, regPTCalib)
	if err != nil {
		return fmt.Errorf("could not read p/t calibration block: %w", err)
	}
	h, err := d.iface.ReadHCalibData(ctx, regHCalib)
	if err != nil {
		return fmt.Errorf("could not read humidity calibration block: %w", err)
	}
	calibration := parseCalibration(pt, h)
	d.calibration = &calibration
	return nil
}

func (d *Device) configure(ctx context.Context) error {
	// ctrl_hum changes only take effect after a write to ctrl_meas
	if err := d.iface.WriteRegister(ctx, regCtrlHum, oversampling1x); err != nil {
		return fmt.Errorf("could not configure humidity oversampling: %w", err)
	}
	d.ctrlMeas = oversampling1x<<5 | oversampling1x<<2 | modeSleep
	if err := d.iface.WriteRegister(ctx, regCtrlMeas, d.ctrlMeas); err != nil {
		return fmt.Errorf("could not configure measurement oversampling: %w", err)
	}
	if err := d.iface.WriteRegister(ctx, regConfig, 0x00); err != nil {
		return fmt.Errorf("could not configure standby and filter: %w", err)
	}
	return nil
}

// Measure triggers a forced-mode conversion, waits for it to complete and
// returns the compensated readings.
func (d *Device) Measure(ctx context.Context) (Measurements, error) {
	if d.calibration == nil {
		return Measurements{}, ErrCalibrationMissing
	}
	if err := d.iface.WriteRegister(ctx, regCtrlMeas, d.ctrlMeas|modeForced); err != nil {
		return Measurements{}, fmt.Errorf("could not trigger measurement: %w", err)
	}
	d.delay.Sleep(measurementDelay)
	data, err := d.iface.ReadData(ctx, regData)
	if err != nil {
		return Measurements{}, fmt.Errorf("could not read sample block: %w", err)
	}
	adcP, adcT, adcH, err := splitSample(data)
	if err != nil {
		return Measurements{}, err
	}
	temp, tFine := d.calibration.compensateTemperature(adcT)
	return Measurements{
		Temperature: temp,
		Pressure:    d.calibration.compensatePressure(adcP, tFine),
		Humidity:    d.calibration.compensateHumidity(adcH, tFine),
	}, nil
}

// GetTemperature performs a single measurement and returns temperature in Celsius.
func (d *Device) GetTemperature(ctx context.Context) (float32, error) {
	m, err := d.Measure(ctx)
	return m.Temperature, err
}

// GetHumidity performs a single measurement and returns relative humidity in %RH.
func (d *Device) GetHumidity(ctx context.Context) (float32, error) {
	m, err := d.Measure(ctx)
	return m.Humidity, err
}

// GetTempAndHum performs a single measurement and returns temperature and humidity.
func (d *Device) GetTempAndHum(ctx context.Context) (float32, float32, error) {
	m, err := d.Measure(ctx)
	return m.Temperature, m.Humidity, err
}

// splitSample unpacks the raw sample block: 20-bit pressure and temperature
// readings followed by the 16-bit humidity reading, all big-endian.
func splitSample(data [DataLen]byte) (adcP, adcT, adcH int32, err error) {
	var zeros, ones int
	for _, b := range data {
		switch b {
		case 0x00:
			zeros++
		case 0xFF:
			ones++
		}
	}
	// an all-zero or all-ones block means the conversion never ran or the
	// bus floated; no channel produces these values in normal operation
	if zeros == len(data) || ones == len(data) {
		return 0, 0, 0, fmt.Errorf("%w: raw block %#x", ErrInvalidData, data)
	}
	adcP = int32(data[0])<<12 | int32(data[1])<<4 | int32(data[2])>>4
	adcT = int32(data[3])<<12 | int32(data[4])<<4 | int32(data[5])>>4
	adcH = int32(data[6])<<8 | int32(data[7])
	return adcP, adcT, adcH, nil
}
