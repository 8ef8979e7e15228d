// Package colormath holds the colour conversions shared by the analysis and
// imaging packages.
//
// All math is uncalibrated sRGB: hue in degrees [0,360), saturation and
// lightness in percent [0,100]. Channel inputs are uint8, so the 0-255 input
// contract is enforced by the type system and every function here is total.
package colormath
