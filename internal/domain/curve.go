package domain

// LonLat is one geographic sample on a line, degrees, longitude canonical
// [-180, 180).
type LonLat struct {
	Lon float64
	Lat float64
}

// HorizonCurve is the ordered AC+DC locus for one body: the AC half runs
// south to north, the DC half north to south, joined at the highest sampled
// latitude. ACEnd/DCStart mark the branch change.
//
// Invariant: ACEnd < DCStart whenever both halves are non-empty. Either half
// may be empty when the body is circumpolar over part of the sampled range.
type HorizonCurve struct {
	Body    Body
	Points  []LonLat
	ACEnd   int
	DCStart int
}

// Empty reports whether no horizon crossing exists at any sampled latitude.
func (c HorizonCurve) Empty() bool { return len(c.Points) == 0 }

// ACPoints returns the rising half of the curve.
func (c HorizonCurve) ACPoints() []LonLat {
	if c.Empty() || c.ACEnd < 0 {
		return nil
	}
	return c.Points[:c.ACEnd+1]
}

// DCPoints returns the setting half of the curve.
func (c HorizonCurve) DCPoints() []LonLat {
	if c.Empty() || c.DCStart >= len(c.Points) {
		return nil
	}
	return c.Points[c.DCStart:]
}

// ParanEvent is a latitude where two bodies sit on angular lines
// simultaneously. SourceLines identifies the two contributing body/angle
// lines, e.g. "Sun_AC" and "Mars_MC".
type ParanEvent struct {
	Latitude    float64
	SourceLines [2]string
}
