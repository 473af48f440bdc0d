package fom

// Options configures Compute's selection policy and shell partition.
type Options struct {
	Shells []Shell

	// SigmaCutoff rejects a pair if either list's I < SigmaCutoff*sigma.
	// Zero disables the cutoff.
	SigmaCutoff float64

	// DropNegative, if true, rejects any pair with a negative intensity in
	// either list instead of keeping it as-is.
	DropNegative bool

	// MulCutoff enforces a minimum redundancy in both lists. Zero
	// disables the cutoff.
	MulCutoff int32

	// DStarMin/DStarMax restrict accumulation to reflections whose
	// resolution falls in this range. A zero DStarMax disables the
	// resolution filter entirely.
	DStarMin, DStarMax float64

	// NoWilson skips the pre-accumulation Wilson relative-B scale.
	NoWilson bool
}

func (o Options) resolutionFilterEnabled() bool {
	return o.DStarMax > 0
}

func (o Options) passesSelection(i1, s1, i2, s2 float64, d *float64, redundancy1, redundancy2 int32) bool {
	if o.SigmaCutoff > 0 {
		if s1 > 0 && i1 < o.SigmaCutoff*s1 {
			return false
		}
		if s2 > 0 && i2 < o.SigmaCutoff*s2 {
			return false
		}
	}
	if o.DropNegative && (i1 < 0 || i2 < 0) {
		return false
	}
	if o.MulCutoff > 0 && (redundancy1 < o.MulCutoff || redundancy2 < o.MulCutoff) {
		return false
	}
	if o.resolutionFilterEnabled() && d != nil {
		if *d < o.DStarMin || *d > o.DStarMax {
			return false
		}
	}
	return true
}
