// Package canvas draws primitives onto a raster image.
//
// A [Canvas] wraps a [gg.Context] and adds one coordinate convention on top:
// when built with a positive unit, all positions are figure units with the
// origin at the bottom-left and the y axis up (the convention of
// [github.com/matzehuels/orchard/pkg/layout]); with a unit of 0 positions are
// plain pixels with the origin at the top-left.
//
// Line widths, radii, blur radii and font sizes are always pixels.
//
// Text drawn through the canvas is glyph-filtered first: runes the font
// cannot draw are dropped instead of rendering as boxes.
package canvas
