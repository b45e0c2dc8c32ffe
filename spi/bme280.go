package spi

import (
	"context"

	"github.com/mklimuk/bme280"
)

// BME280 is a BME280 attached over SPI with a dedicated chip-select line.
// It composes the register interface with the measurement engine so callers
// only deal with physical units.
type BME280 struct {
	common *bme280.Device
	iface  *Interface
	delay  bme280.Delayer
}

// New composes the supplied bus, chip-select and delay handles into a ready
// to initialize sensor. The chip-select line is forced high; a pin failure
// aborts construction.
func New(ctx context.Context, bus bme280.SPIBus, cs bme280.ChipSelectPin, delay bme280.Delayer) (*BME280, error) {
	iface, err := NewInterface(ctx, bus, cs)
	if err != nil {
		return nil, err
	}
	return &BME280{
		common: bme280.NewDevice(iface, delay),
		iface:  iface,
		delay:  delay,
	}, nil
}

// Init resets and configures the sensor and loads its calibration.
func (d *BME280) Init(ctx context.Context) error {
	return d.common.Init(ctx)
}

// Measure captures and compensates one temperature/pressure/humidity reading.
func (d *BME280) Measure(ctx context.Context) (bme280.Measurements, error) {
	return d.common.Measure(ctx)
}

// GetTemperature performs a single measurement and returns temperature in Celsius.
func (d *BME280) GetTemperature(ctx context.Context) (float32, error) {
	return d.common.GetTemperature(ctx)
}

// GetHumidity performs a single measurement and returns relative humidity in %RH.
func (d *BME280) GetHumidity(ctx context.Context) (float32, error) {
	return d.common.GetHumidity(ctx)
}

// GetTempAndHum performs a single measurement and returns temperature and humidity.
func (d *BME280) GetTempAndHum(ctx context.Context) (float32, float32, error) {
	return d.common.GetTempAndHum(ctx)
}

// Destroy consumes the sensor and returns the underlying handles unchanged,
// so the bus can be used for a different device. It never fails.
func (d *BME280) Destroy() (bme280.SPIBus, bme280.ChipSelectPin, bme280.Delayer) {
	bus, cs := d.iface.Release()
	return bus, cs, d.delay
}
