package merge_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/merge"
	"github.com/xtalmerge/snapmerge/partiality"
	"github.com/xtalmerge/snapmerge/polarisation"
)

type sliceSource struct {
	crystals []*crystal.Crystal
	i        int
}

func (s *sliceSource) Next() (*crystal.Crystal, error) {
	if s.i >= len(s.crystals) {
		return nil, io.EOF
	}
	c := s.crystals[s.i]
	s.i++
	return c, nil
}

func cubicCell(t *testing.T) cell.UnitCell {
	u, err := cell.FromParams(cell.Params{A: 1e-9, B: 1e-9, C: 1e-9, Alpha: math.Pi / 2, Beta: math.Pi / 2, Gamma: math.Pi / 2})
	require.NoError(t, err)
	return u
}

func buildCrystals(t *testing.T) []*crystal.Crystal {
	var out []*crystal.Crystal
	for i, osf := range []float64{1.1, 0.9} {
		c := crystal.NewCrystal("c", cubicCell(t), crystal.Beam{WavelengthM: 1.3e-10, Bandwidth: 0.001})
		c.OSF = osf
		h := c.Refl.Add(int32(i+1), 0, 0)
		c.Refl.SetIntensity(h, 100*osf)
		c.Refl.SetSigma(h, 5)
		c.Refl.SetPartiality(h, 1)
		out = append(out, c)
	}
	// give both crystals the same reflection so scaling has something to act on
	for _, c := range out {
		h := c.Refl.Add(1, 1, 0)
		c.Refl.SetIntensity(h, 50*c.OSF)
		c.Refl.SetSigma(h, 3)
		c.Refl.SetPartiality(h, 1)
	}
	return out
}

func baseOptions() merge.Options {
	opts := merge.DefaultOptions("1")
	opts.Iterations = 0
	opts.Model = partiality.Unity{}
	opts.Scaling.NoScale = true
	opts.Scaling.MinMeasurements = 2
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

// Idempotence: no_scale=true run twice on equivalent inputs yields
// byte-identical merged intensities.
func TestDriver_NoScaleIsIdempotent(t *testing.T) {
	d := merge.NewDriver(baseOptions())
	full1, _, _, err := d.Run(context.Background(), &sliceSource{crystals: buildCrystals(t)}, polarisation.Options{Mode: polarisation.Unpolarised})
	require.NoError(t, err)

	d2 := merge.NewDriver(baseOptions())
	full2, _, _, err := d2.Run(context.Background(), &sliceSource{crystals: buildCrystals(t)}, polarisation.Options{Mode: polarisation.Unpolarised})
	require.NoError(t, err)

	h1, ok := full1.Find(1, 1, 0)
	require.True(t, ok)
	h2, ok := full2.Find(1, 1, 0)
	require.True(t, ok)
	require.Equal(t, full1.Intensity(h1), full2.Intensity(h2))
}

// InputError: a crystal with missing beam parameters is skipped, not fatal.
func TestDriver_SkipsInvalidCrystal(t *testing.T) {
	good := buildCrystals(t)
	bad := crystal.NewCrystal("bad", cubicCell(t), crystal.Beam{}) // WavelengthM == 0

	d := merge.NewDriver(baseOptions())
	full, crystals, _, err := d.Run(context.Background(), &sliceSource{crystals: append([]*crystal.Crystal{bad}, good...)}, polarisation.Options{Mode: polarisation.Unpolarised})
	require.NoError(t, err)
	require.Len(t, crystals, len(good))
	require.NotNil(t, full)
}

// §9: negative intensities are counted into IterationReport.Warnings each
// cycle rather than silently discarded.
func TestDriver_ReportsNegativeIntensityWarning(t *testing.T) {
	crystals := buildCrystals(t)
	h := crystals[0].Refl.Add(0, 0, 1)
	crystals[0].Refl.SetIntensity(h, -5)
	crystals[0].Refl.SetSigma(h, 1)
	crystals[0].Refl.SetPartiality(h, 1)

	d := merge.NewDriver(baseOptions())
	_, _, reports, err := d.Run(context.Background(), &sliceSource{crystals: crystals}, polarisation.Options{Mode: polarisation.Unpolarised})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.Equal(t, 1, reports[0].Warnings.NegativeIntensity)
}

type fixedCellProvider struct {
	u   cell.UnitCell
	err error
}

func (f fixedCellProvider) ReferenceCell() (cell.UnitCell, error) { return f.u, f.err }

// §6.1: a crystal whose cell deviates from the supplied reference beyond
// CellTolerance is rejected as an InputError, not fatal to the run.
func TestDriver_RejectsCrystalMismatchedWithReferenceCell(t *testing.T) {
	good := buildCrystals(t)

	mismatched, err := cell.FromParams(cell.Params{A: 5e-9, B: 5e-9, C: 5e-9, Alpha: math.Pi / 2, Beta: math.Pi / 2, Gamma: math.Pi / 2})
	require.NoError(t, err)
	off := crystal.NewCrystal("off", mismatched, crystal.Beam{WavelengthM: 1.3e-10})

	opts := baseOptions()
	opts.Cells = fixedCellProvider{u: cubicCell(t)}
	opts.CellTolerance = 0.02

	d := merge.NewDriver(opts)
	_, crystals, _, err := d.Run(context.Background(), &sliceSource{crystals: append([]*crystal.Crystal{off}, good...)}, polarisation.Options{Mode: polarisation.Unpolarised})
	require.NoError(t, err)
	require.Len(t, crystals, len(good))
}

func TestDriver_UnknownPointGroupIsFatal(t *testing.T) {
	opts := baseOptions()
	opts.PointGroupName = "not-a-point-group"
	d := merge.NewDriver(opts)
	_, _, _, err := d.Run(context.Background(), &sliceSource{}, polarisation.Options{})
	require.Error(t, err)
}
