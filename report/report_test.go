package report_test

import (
	"bufio"
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtalmerge/snapmerge/cell"
	"github.com/xtalmerge/snapmerge/crystal"
	"github.com/xtalmerge/snapmerge/refl"
	"github.com/xtalmerge/snapmerge/report"
	"github.com/xtalmerge/snapmerge/scaling"
	"github.com/xtalmerge/snapmerge/symmetry"
)

// Round-trip law 7: writing a merged list then parsing the lines back
// reproduces each reflection's intensity and sigma to within the text
// format's precision.
func TestWriteMergedList_RoundTrips(t *testing.T) {
	u, err := cell.FromParams(cell.Params{A: 1e-9, B: 1e-9, C: 1e-9, Alpha: math.Pi / 2, Beta: math.Pi / 2, Gamma: math.Pi / 2})
	require.NoError(t, err)
	pg, err := symmetry.Lookup("1")
	require.NoError(t, err)

	list := refl.NewReflList()
	h1 := list.Add(1, 0, 0)
	list.SetIntensity(h1, 123.456789)
	list.SetSigma(h1, 4.5)
	list.SetRedundancy(h1, 3)
	h2 := list.Add(-2, 1, 3)
	list.SetIntensity(h2, -7.25)
	list.SetSigma(h2, 1.1)
	list.SetRedundancy(h2, 1)

	var buf bytes.Buffer
	require.NoError(t, report.WriteMergedList(&buf, list, u, pg))

	sc := bufio.NewScanner(&buf)
	require.True(t, sc.Scan()) // header
	require.True(t, strings.HasPrefix(sc.Text(), "# cell"))

	type row struct {
		h, k, l          int32
		i, sigma         float64
		redundancy       int32
	}
	var rows []row
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		require.Len(t, fields, 6)
		h, _ := strconv.Atoi(fields[0])
		k, _ := strconv.Atoi(fields[1])
		l, _ := strconv.Atoi(fields[2])
		i, _ := strconv.ParseFloat(fields[3], 64)
		s, _ := strconv.ParseFloat(fields[4], 64)
		r, _ := strconv.Atoi(fields[5])
		rows = append(rows, row{int32(h), int32(k), int32(l), i, s, int32(r)})
	}
	require.Len(t, rows, 2)

	byHKL := map[[3]int32]row{}
	for _, r := range rows {
		byHKL[[3]int32{r.h, r.k, r.l}] = r
	}

	got1 := byHKL[[3]int32{1, 0, 0}]
	require.InDelta(t, 123.456789, got1.i, 1e-6)
	require.InDelta(t, 4.5, got1.sigma, 1e-9)
	require.EqualValues(t, 3, got1.redundancy)

	got2 := byHKL[[3]int32{-2, 1, 3}]
	require.InDelta(t, -7.25, got2.i, 1e-9)
}

func TestWriteCrystalDump(t *testing.T) {
	u, err := cell.FromParams(cell.Params{A: 1e-9, B: 1e-9, C: 1e-9, Alpha: math.Pi / 2, Beta: math.Pi / 2, Gamma: math.Pi / 2})
	require.NoError(t, err)

	c1 := crystal.NewCrystal("c1", u, crystal.Beam{WavelengthM: 1.3e-10, DivergenceRad: 0.0012})
	c1.OSF = 1.5
	c2 := crystal.NewCrystal("c2", u, crystal.Beam{WavelengthM: 1.3e-10, DivergenceRad: 0.0034})
	c2.Status = crystal.Lost

	var buf bytes.Buffer
	require.NoError(t, report.WriteCrystalDump(&buf, []*crystal.Crystal{c1, c2}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	f1 := strings.Fields(lines[0])
	require.Len(t, f1, 4)
	require.Equal(t, "0", f1[0])
	osf, err := strconv.ParseFloat(f1[1], 64)
	require.NoError(t, err)
	require.InDelta(t, 1.5, osf, 1e-9)
	div, err := strconv.ParseFloat(f1[2], 64)
	require.NoError(t, err)
	require.InDelta(t, 0.0012, div, 1e-9)
	require.Equal(t, "-", f1[3])

	f2 := strings.Fields(lines[1])
	require.Len(t, f2, 4)
	div2, err := strconv.ParseFloat(f2[2], 64)
	require.NoError(t, err)
	require.InDelta(t, 0.0034, div2, 1e-9)
	require.Equal(t, "N", f2[3])
}

func TestWriteIterationReport(t *testing.T) {
	var buf bytes.Buffer
	rep := scaling.Report{Iterations: 5, ActiveCrystals: 10, Converged: true}
	require.NoError(t, report.WriteIterationReport(&buf, 2, 1, 0, 1, rep))
	require.Contains(t, buf.String(), "2 crystals could not be refined: 1 no-ref, 0 solve-failed, 1 lost")
	require.Contains(t, buf.String(), "scaling: iterations=5")
}
