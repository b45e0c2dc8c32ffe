package bme280

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Interface = &ifaceStub{}

// ifaceStub fakes the register interface one layer below the measurement
// engine. Reads are served from canned blocks, writes are recorded in order.
type ifaceStub struct {
	registers map[byte]byte
	pt        [PTCalibLen]byte
	h         [HCalibLen]byte
	data      [DataLen]byte
	writes    [][2]byte
	readErr   error
}

func (s *ifaceStub) ReadRegister(_ context.Context, register byte) (byte, error) {
	if s.readErr != nil {
		return 0, s.readErr
	}
	return s.registers[register], nil
}

func (s *ifaceStub) ReadData(_ context.Context, register byte) ([DataLen]byte, error) {
	if s.readErr != nil {
		return [DataLen]byte{}, s.readErr
	}
	return s.data, nil
}

func (s *ifaceStub) ReadPTCalibData(_ context.Context, register byte) ([PTCalibLen]byte, error) {
	if s.readErr != nil {
		return [PTCalibLen]byte{}, s.readErr
	}
	return s.pt, nil
}

func (s *ifaceStub) ReadHCalibData(_ context.Context, register byte) ([HCalibLen]byte, error) {
	if s.readErr != nil {
		return [HCalibLen]byte{}, s.readErr
	}
	return s.h, nil
}

func (s *ifaceStub) WriteRegister(_ context.Context, register byte, payload byte) error {
	s.writes = append(s.writes, [2]byte{register, payload})
	return nil
}

type recordingDelayer struct {
	slept []time.Duration
}

func (d *recordingDelayer) Sleep(dur time.Duration) {
	d.slept = append(d.slept, dur)
}

func newHealthyStub() *ifaceStub {
	return &ifaceStub{
		registers: map[byte]byte{regChipID: chipID},
		pt:        testPTCalib,
		h:         testHCalib,
		// adc_P = 415148, adc_T = 519888, adc_H = 26000
		data: [DataLen]byte{0x65, 0x5A, 0xC0, 0x7E, 0xED, 0x00, 0x65, 0x90},
	}
}

func TestDevice_Init(t *testing.T) {
	stub := newHealthyStub()
	delay := &recordingDelayer{}
	dev := NewDevice(stub, delay)

	require.NoError(t, dev.Init(context.Background()))
	assert.Equal(t, [][2]byte{
		{regReset, cmdSoftReset},
		{regCtrlHum, 0x01},
		{regCtrlMeas, 0x24},
		{regConfig, 0x00},
	}, stub.writes)
	assert.Contains(t, delay.slept, startupDelay)
	require.NotNil(t, dev.calibration)
	assert.Equal(t, uint16(27504), dev.calibration.T1)
}

func TestDevice_InitUnsupportedChip(t *testing.T) {
	stub := newHealthyStub()
	stub.registers[regChipID] = 0x58

	dev := NewDevice(stub, &recordingDelayer{})
	err := dev.Init(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedChip)
}

func TestDevice_MeasureWithoutInit(t *testing.T) {
	dev := NewDevice(newHealthyStub(), &recordingDelayer{})

	_, err := dev.Measure(context.Background())
	assert.ErrorIs(t, err, ErrCalibrationMissing)
}

func TestDevice_Measure(t *testing.T) {
	stub := newHealthyStub()
	delay := &recordingDelayer{}
	dev := NewDevice(stub, delay)
	require.NoError(t, dev.Init(context.Background()))
	stub.writes = nil

	m, err := dev.Measure(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 25.08, float64(m.Temperature), 0.01)
	assert.InDelta(t, 100653.3, float64(m.Pressure), 1.0)
	assert.InDelta(t, 31.97, float64(m.Humidity), 0.1)
	// forced mode trigger keeps the configured oversampling bits
	assert.Equal(t, [][2]byte{{regCtrlMeas, 0x25}}, stub.writes)
	assert.Contains(t, delay.slept, measurementDelay)
}

func TestDevice_MeasureReturnsFreshReading(t *testing.T) {
	stub := newHealthyStub()
	dev := NewDevice(stub, &recordingDelayer{})
	require.NoError(t, dev.Init(context.Background()))

	first, err := dev.Measure(context.Background())
	require.NoError(t, err)

	// raise adc_T; the next measurement must reflect the new sample
	stub.data[3] = 0x8E
	second, err := dev.Measure(context.Background())
	require.NoError(t, err)
	assert.Greater(t, second.Temperature, first.Temperature)
}

func TestDevice_MeasureInvalidData(t *testing.T) {
	tests := []struct {
		name string
		fill byte
	}{
		{"all zero", 0x00},
		{"all ones", 0xFF},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stub := newHealthyStub()
			dev := NewDevice(stub, &recordingDelayer{})
			require.NoError(t, dev.Init(context.Background()))

			for i := range stub.data {
				stub.data[i] = test.fill
			}
			_, err := dev.Measure(context.Background())
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestDevice_GetTempAndHum(t *testing.T) {
	dev := NewDevice(newHealthyStub(), &recordingDelayer{})
	require.NoError(t, dev.Init(context.Background()))

	temp, hum, err := dev.GetTempAndHum(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 25.08, float64(temp), 0.01)
	assert.InDelta(t, 31.97, float64(hum), 0.1)
}

func TestSplitSample(t *testing.T) {
	data := [DataLen]byte{0x65, 0x5A, 0xC0, 0x7E, 0xED, 0x00, 0x65, 0x90}

	adcP, adcT, adcH, err := splitSample(data)
	require.NoError(t, err)
	assert.Equal(t, int32(415148), adcP)
	assert.Equal(t, int32(519888), adcT)
	assert.Equal(t, int32(26000), adcH)
}
