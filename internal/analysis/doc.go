// Package analysis turns pixels into painting advice: per-colour analysis,
// colour harmonies, the whole-image temperature profile, dominant palettes and
// the paint-mixing guidance built from them.
//
// Everything here is a pure function of its inputs. Records hold no reference
// to the buffer they were computed from.
package analysis
