// Package fom implements §4.10: resolution-binned figures of merit between
// two reflection lists over the same asymmetric domain — R-factors,
// correlation coefficients, anomalous-signal measures, and sigma-ratio
// measures — with Bijvoet-pair bookkeeping and Wilson scaling.
package fom
