package bme280

import "encoding/binary"

// Calibration holds the factory trimming coefficients read from the sensor's
// non-volatile memory. Naming follows the datasheet (dig_T1 .. dig_H6).
type Calibration struct {
	T1 uint16
	T2 int16
	T3 int16
	P1 uint16
	P2 int16
	P3 int16
	P4 int16
	P5 int16
	P6 int16
	P7 int16
	P8 int16
	P9 int16
	H1 uint8
	H2 int16
	H3 uint8
	H4 int16
	H5 int16
	H6 int8
}

// parseCalibration assembles the coefficient set from the two raw blocks:
// pt read at 0x88 (it carries dig_H1 in its last byte) and h read at 0xE1.
// Multi-byte coefficients are little-endian; dig_H4 and dig_H5 are 12-bit
// values sharing the middle byte of the humidity block.
func parseCalibration(pt [PTCalibLen]byte, h [HCalibLen]byte) Calibration {
	return Calibration{
		T1: binary.LittleEndian.Uint16(pt[0:2]),
		T2: int16(binary.LittleEndian.Uint16(pt[2:4])),
		T3: int16(binary.LittleEndian.Uint16(pt[4:6])),
		P1: binary.LittleEndian.Uint16(pt[6:8]),
		P2: int16(binary.LittleEndian.Uint16(pt[8:10])),
		P3: int16(binary.LittleEndian.Uint16(pt[10:12])),
		P4: int16(binary.LittleEndian.Uint16(pt[12:14])),
		P5: int16(binary.LittleEndian.Uint16(pt[14:16])),
		P6: int16(binary.LittleEndian.Uint16(pt[16:18])),
		P7: int16(binary.LittleEndian.Uint16(pt[18:20])),
		P8: int16(binary.LittleEndian.Uint16(pt[20:22])),
		P9: int16(binary.LittleEndian.Uint16(pt[22:24])),
		H1: pt[25],
		H2: int16(binary.LittleEndian.Uint16(h[0:2])),
		H3: h[2],
		H4: int16(int8(h[3]))<<4 | int16(h[4]&0x0F),
		H5: int16(int8(h[5]))<<4 | int16(h[4]>>4),
		H6: int8(h[6]),
	}
}

// Output clamps from the datasheet operating range.
const (
	temperatureMin = -40.0
	temperatureMax = 85.0
	pressureMin    = 30000.0
	pressureMax    = 110000.0
	humidityMin    = 0.0
	humidityMax    = 100.0
)

// compensateTemperature converts a raw 20-bit temperature reading into
// degrees Celsius using the datasheet formulas. It also returns the t_fine
// carry consumed by the pressure and humidity compensation.
func (c Calibration) compensateTemperature(raw int32) (float32, float64) {
	var1 := (float64(raw)/16384.0 - float64(c.T1)/1024.0) * float64(c.T2)
	var2 := float64(raw)/131072.0 - float64(c.T1)/8192.0
	var2 = var2 * var2 * float64(c.T3)
	tFine := var1 + var2
	temp := tFine / 5120.0
	if temp < temperatureMin {
		temp = temperatureMin
	}
	if temp > temperatureMax {
		temp = temperatureMax
	}
	return float32(temp), tFine
}

// compensatePressure converts a raw 20-bit pressure reading into Pascal.
func (c Calibration) compensatePressure(raw int32, tFine float64) float32 {
	var1 := tFine/2.0 - 64000.0
	var2 := var1 * var1 * float64(c.P6) / 32768.0
	var2 = var2 + var1*float64(c.P5)*2.0
	var2 = var2/4.0 + float64(c.P4)*65536.0
	var1 = (float64(c.P3)*var1*var1/524288.0 + float64(c.P2)*var1) / 524288.0
	var1 = (1.0 + var1/32768.0) * float64(c.P1)
	if var1 == 0 {
		// avoid division by zero on blank calibration
		return pressureMin
	}
	p := 1048576.0 - float64(raw)
	p = (p - var2/4096.0) * 6250.0 / var1
	var1 = float64(c.P9) * p * p / 2147483648.0
	var2 = p * float64(c.P8) / 32768.0
	p = p + (var1+var2+float64(c.P7))/16.0
	if p < pressureMin {
		p = pressureMin
	}
	if p > pressureMax {
		p = pressureMax
	}
	return float32(p)
}

// compensateHumidity converts a raw 16-bit humidity reading into %RH.
func (c Calibration) compensateHumidity(raw int32, tFine float64) float32 {
	h := tFine - 76800.0
	h = (float64(raw) - (float64(c.H4)*64.0 + float64(c.H5)/16384.0*h)) *
		(float64(c.H2) / 65536.0 * (1.0 + float64(c.H6)/67108864.0*h*(1.0+float64(c.H3)/67108864.0*h)))
	h = h * (1.0 - float64(c.H1)*h/524288.0)
	if h < humidityMin {
		h = humidityMin
	}
	if h > humidityMax {
		h = humidityMax
	}
	return float32(h)
}
