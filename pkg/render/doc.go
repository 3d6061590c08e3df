// Package render groups the raster rendering building blocks.
//
//   - [canvas]: gg-backed drawing surface with figure-unit coordinates
//   - [text]: glyph filtering, font shrinking and word wrapping
//   - [anim]: frame sequences, GIF decode/encode and composition
//   - [sink]: output encoders (PNG, GIF, DOT, SVG, JSON)
//
// Scenes in [github.com/matzehuels/orchard/pkg/scene] combine these with a
// theme to produce finished graphics.
//
// [canvas]: github.com/matzehuels/orchard/pkg/render/canvas
// [text]: github.com/matzehuels/orchard/pkg/render/text
// [anim]: github.com/matzehuels/orchard/pkg/render/anim
// [sink]: github.com/matzehuels/orchard/pkg/render/sink
package render
