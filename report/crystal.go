package report

import (
	"fmt"
	"io"

	"github.com/xtalmerge/snapmerge/crystal"
)

// WriteCrystalDump writes one line per crystal: index, OSF, beam divergence
// (radians), and the status dump character ('-' OK, 'N' flagged) (§6.2).
func WriteCrystalDump(w io.Writer, crystals []*crystal.Crystal) error {
	for i, c := range crystals {
		if _, err := fmt.Fprintf(w, "%d %.6g %.6g %s\n",
			i, c.OSF, c.Beam.DivergenceRad, c.Status.String()); err != nil {
			return err
		}
	}
	return nil
}
