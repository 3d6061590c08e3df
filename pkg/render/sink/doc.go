// Package sink encodes rendered graphics and layouts.
//
// A "sink" is the last pipeline stage: it turns an image, a frame sequence or
// a resolved [layout.Layout] into bytes.
//
//   - [PNG]: static images
//   - [GIF]: looping animations
//   - [DOT] and [SVG]: bracket topology as a Graphviz diagram
//   - [JSON]: resolved slot and connector geometry for external tools
//
// [layout.Layout]: github.com/matzehuels/orchard/pkg/layout.Layout
package sink
