// Package polarisation implements the §4.4 polarisation correction: dividing
// each reflection's intensity by the polarisation factor implied by the
// beam geometry, applied exactly once, before the first scaling pass.
package polarisation
