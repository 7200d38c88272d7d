// Package output formats merge results for the console and for
// machine-readable JSON consumption.
package output
