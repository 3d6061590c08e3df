// Package scene composes the stream graphics.
//
// Every scene is a function of an [Env] and its data: the env carries the
// theme, fonts, local asset library and remote image fetcher, all built once
// per run by the caller. Scenes never fail because an image is missing; the
// library and fetcher substitute the placeholder and log a warning.
//
// # Scenes
//
//   - [Bracket]: the double-elimination top-8 over the animated sky
//   - [CardFront], [CardBack], [CardFlip]: player cards and the flip reveal
//   - [Versus]: two cards facing each other over the background
//   - [Commentary]: the commentator overlay
//   - [DonorScroll], [DonorWall]: the looping donor list and its framed wall
//   - [Poster]: the event announcement
//
// Static scenes return an [image.Image]; animated scenes return an
// [anim.Sequence] ready for [github.com/matzehuels/orchard/pkg/render/sink.GIF].
//
// [anim.Sequence]: github.com/matzehuels/orchard/pkg/render/anim.Sequence
package scene
