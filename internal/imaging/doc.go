// Package imaging holds the pixel-level half of the painting study tools:
// the RGBA PixelBuffer, decoding and encoding, the simplification filters
// (box blur, mode filter, posterize, value grouping, squint) and the value
// analysis that runs over a displayed buffer.
//
// # Coordinate System
//
// Coordinates are 0-based with (0,0) at the top-left corner. Regions are
// inclusive at (X1,Y1) and exclusive at (X2,Y2).
//
// # Buffers
//
// A PixelBuffer stores Width*Height*4 bytes of non-premultiplied RGBA.
// Filters never mutate their input. Given an invalid buffer they return it
// unchanged so callers can chain them without checking each step.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The filters are pure functions; the
// windowed ones split rows across goroutines and write disjoint output rows,
// so results do not depend on scheduling.
package imaging
