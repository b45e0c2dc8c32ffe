package bme280

import (
	"context"
	"fmt"
	"testing"
)

func TestMockWeatherSensor_StaticValues(t *testing.T) {
	sensor := NewMockWeatherSensor(
		func(ctx context.Context) (float32, error) { return 22.5, nil },
		func(ctx context.Context) (float32, error) { return 101325, nil },
		func(ctx context.Context) (float32, error) { return 45.0, nil },
	)

	ctx := context.Background()

	m, err := sensor.Measure(ctx)
	if err != nil {
		t.Fatalf("Measure: unexpected error: %v", err)
	}
	if m.Temperature != 22.5 || m.Pressure != 101325 || m.Humidity != 45.0 {
		t.Errorf("unexpected measurements: %+v", m)
	}

	temp, hum, err := sensor.GetTempAndHum(ctx)
	if err != nil {
		t.Fatalf("GetTempAndHum: unexpected error: %v", err)
	}
	if temp != 22.5 || hum != 45.0 {
		t.Errorf("expected 22.5/45.0, got %f/%f", temp, hum)
	}
}

func TestMockWeatherSensor_ErrorHandling(t *testing.T) {
	sensor := NewMockWeatherSensor(
		func(ctx context.Context) (float32, error) { return 0, fmt.Errorf("temperature sensor error") },
		func(ctx context.Context) (float32, error) { return 0, fmt.Errorf("pressure sensor error") },
		func(ctx context.Context) (float32, error) { return 0, fmt.Errorf("humidity sensor error") },
	)

	ctx := context.Background()

	_, err := sensor.GetTemperature(ctx)
	if err == nil || err.Error() != "temperature sensor error" {
		t.Errorf("GetTemperature: expected specific error, got %v", err)
	}

	_, err = sensor.GetHumidity(ctx)
	if err == nil || err.Error() != "humidity sensor error" {
		t.Errorf("GetHumidity: expected specific error, got %v", err)
	}

	_, err = sensor.Measure(ctx)
	if err == nil || err.Error() != "temperature sensor error" {
		t.Errorf("Measure: expected temperature sensor error, got %v", err)
	}
}

func TestMockWeatherSensor_DynamicBehavior(t *testing.T) {
	currentTemp := float32(20.0)

	sensor := NewMockWeatherSensor(
		func(ctx context.Context) (float32, error) { return currentTemp, nil },
		func(ctx context.Context) (float32, error) { return 100000, nil },
		func(ctx context.Context) (float32, error) { return 50.0, nil },
	)

	ctx := context.Background()

	temp, err := sensor.GetTemperature(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 20.0 {
		t.Errorf("expected 20.0, got %f", temp)
	}

	currentTemp = 25.0
	temp, err = sensor.GetTemperature(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if temp != 25.0 {
		t.Errorf("expected 25.0, got %f", temp)
	}
}
