package linmath

// CalLen is the number of scalars in a flattened BaseStationCal.
const CalLen = 7

// BaseStationCal holds the correction coefficients that model the
// systematic sweep error of one base-station axis.
type BaseStationCal struct {
	Phase     float64
	Tilt      float64
	Curve     float64
	GibPha    float64
	GibMag    float64
	OgeePhase float64
	OgeeMag   float64
}

// CalFromSlice reads the seven coefficients in declaration order.
func CalFromSlice(s []float64) BaseStationCal {
	_ = s[CalLen-1]
	return BaseStationCal{
		Phase:     s[0],
		Tilt:      s[1],
		Curve:     s[2],
		GibPha:    s[3],
		GibMag:    s[4],
		OgeePhase: s[5],
		OgeeMag:   s[6],
	}
}

// Put writes c into dst using the CalFromSlice layout.
func (c BaseStationCal) Put(dst []float64) {
	_ = dst[CalLen-1]
	dst[0] = c.Phase
	dst[1] = c.Tilt
	dst[2] = c.Curve
	dst[3] = c.GibPha
	dst[4] = c.GibMag
	dst[5] = c.OgeePhase
	dst[6] = c.OgeeMag
}
