// Package report renders merged reflection lists, per-crystal parameter
// dumps, and scaling/iteration summaries to a plain io.Writer — the §6.2
// producer interfaces every other package's results flow through on their
// way out of this module.
package report
