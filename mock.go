package bme280

import "context"

// TemperatureBehaviorFunc defines the function signature for temperature behavior.
// It returns the temperature in Celsius or an error.
type TemperatureBehaviorFunc func(ctx context.Context) (float32, error)

// PressureBehaviorFunc defines the function signature for pressure behavior.
// It returns the pressure in Pascal or an error.
type PressureBehaviorFunc func(ctx context.Context) (float32, error)

// HumidityBehaviorFunc defines the function signature for humidity behavior.
// It returns the relative humidity in %RH or an error.
type HumidityBehaviorFunc func(ctx context.Context) (float32, error)

// MockWeatherSensor is a mock implementation of the measurement surface that
// uses behavior functions to produce results without requiring hardware.
// It can substitute a fully wired BME280 in consumer code.
//
// Example usage:
//
//	sensor := NewMockWeatherSensor(
//		func(ctx context.Context) (float32, error) { return 22.5, nil },
//		func(ctx context.Context) (float32, error) { return 101325, nil },
//		func(ctx context.Context) (float32, error) { return 45.0, nil },
//	)
type MockWeatherSensor struct {
	tempBehavior  TemperatureBehaviorFunc
	pressBehavior PressureBehaviorFunc
	humBehavior   HumidityBehaviorFunc
}

// NewMockWeatherSensor creates a new mock weather sensor with the given
// behavior functions, called on every corresponding Get*/Measure invocation.
func NewMockWeatherSensor(temp TemperatureBehaviorFunc, press PressureBehaviorFunc, hum HumidityBehaviorFunc) *MockWeatherSensor {
	return &MockWeatherSensor{
		tempBehavior:  temp,
		pressBehavior: press,
		humBehavior:   hum,
	}
}

// GetTemperature returns the temperature by calling the temperature behavior function.
func (m *MockWeatherSensor) GetTemperature(ctx context.Context) (float32, error) {
	return m.tempBehavior(ctx)
}

// GetHumidity returns the humidity by calling the humidity behavior function.
func (m *MockWeatherSensor) GetHumidity(ctx context.Context) (float32, error) {
	return m.humBehavior(ctx)
}

// GetTempAndHum returns temperature and humidity by calling both behavior functions.
func (m *MockWeatherSensor) GetTempAndHum(ctx context.Context) (float32, float32, error) {
	temp, err := m.tempBehavior(ctx)
	if err != nil {
		return 0, 0, err
	}
	hum, err := m.humBehavior(ctx)
	if err != nil {
		return 0, 0, err
	}
	return temp, hum, nil
}

// Measure returns a full reading by calling all three behavior functions.
func (m *MockWeatherSensor) Measure(ctx context.Context) (Measurements, error) {
	temp, err := m.tempBehavior(ctx)
	if err != nil {
		return Measurements{}, err
	}
	press, err := m.pressBehavior(ctx)
	if err != nil {
		return Measurements{}, err
	}
	hum, err := m.humBehavior(ctx)
	if err != nil {
		return Measurements{}, err
	}
	return Measurements{Temperature: temp, Pressure: press, Humidity: hum}, nil
}
