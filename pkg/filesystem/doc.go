// Package filesystem provides filesystem implementations for the
// snippet core.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem and an afero-backed one used to run the
// whole core in memory under test.
package filesystem
