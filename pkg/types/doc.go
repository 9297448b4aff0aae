// Package types defines the shared data model of the snippet core and
// the narrow collaborator interfaces it consumes from the host: the
// filesystem, the system clipboard, the clock, desktop notifications and
// the optional markdown converter.
//
// Everything the host owns (event loop, item rendering, packaging) stays
// behind these interfaces so the core can be exercised entirely in
// memory under test.
package types
