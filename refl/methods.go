package refl

// HKL returns the Miller index stored at h.
func (t *ReflList) HKL(h Handle) (int32, int32, int32) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := &t.arena[h]
	return n.refl.h, n.refl.k, n.refl.l
}

// Intensity returns the measured intensity at h.
func (t *ReflList) Intensity(h Handle) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arena[h].refl.intensity
}

// SetIntensity sets the measured intensity at h.
func (t *ReflList) SetIntensity(h Handle, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena[h].refl.intensity = v
}

// Sigma returns sigma(I) at h.
func (t *ReflList) Sigma(h Handle) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arena[h].refl.sigma
}

// SetSigma sets sigma(I) at h. Callers must not pass a negative value
// (invariant 1: sigma(I) >= 0); SetSigma does not itself validate, matching
// the rest of this package's "assertions only for true invariants" policy —
// validation belongs at the producing algorithm's boundary.
func (t *ReflList) SetSigma(h Handle, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena[h].refl.sigma = v
}

// Partiality returns p at h, in [0,1].
func (t *ReflList) Partiality(h Handle) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arena[h].refl.partiality
}

// SetPartiality sets p at h.
func (t *ReflList) SetPartiality(h Handle, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena[h].refl.partiality = v
}

// Redundancy returns r at h.
func (t *ReflList) Redundancy(h Handle) int32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arena[h].refl.redundancy
}

// SetRedundancy sets r at h.
func (t *ReflList) SetRedundancy(h Handle, r int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena[h].refl.redundancy = r
}

// Lorentz returns the Lorentz factor at h.
func (t *ReflList) Lorentz(h Handle) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arena[h].refl.lorentz
}

// SetLorentz sets the Lorentz factor at h.
func (t *ReflList) SetLorentz(h Handle, v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena[h].refl.lorentz = v
}

// Position returns the observed detector position at h.
func (t *ReflList) Position(h Handle) DetectorPosition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arena[h].refl.pos
}

// SetPosition sets the observed detector position at h.
func (t *ReflList) SetPosition(h Handle, p DetectorPosition) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena[h].refl.pos = p
}

// Scalable reports the scalable flag at h.
func (t *ReflList) Scalable(h Handle) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arena[h].refl.scalable
}

// SetScalable sets the scalable flag at h.
func (t *ReflList) SetScalable(h Handle, v bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena[h].refl.scalable = v
}

// Refinable reports the refinable flag at h.
func (t *ReflList) Refinable(h Handle) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.arena[h].refl.refinable
}

// SetRefinable sets the refinable flag at h.
func (t *ReflList) SetRefinable(h Handle, v bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.arena[h].refl.refinable = v
}
