package bme280

// Measurements holds one compensated sensor reading.
type Measurements struct {
	// Temperature in degrees Celsius
	Temperature float32 `yaml:"temperature"`
	// Pressure in Pascal
	Pressure float32 `yaml:"pressure"`
	// Humidity in percent relative humidity
	Humidity float32 `yaml:"humidity"`
}
