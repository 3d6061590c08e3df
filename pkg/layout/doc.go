// Package layout computes slot and connector geometry for tournament graphics.
//
// # Overview
//
// A graphic is described by a [Plan]: a set of named [Slot] values (a bracket
// match, a stat row, an avatar position) and the [Link] values joining them.
// [Plan.Resolve] turns the plan into a [Layout] in two phases:
//
//  1. Every slot is measured with [Measure], producing a [Geometry] table
//     keyed by slot name.
//  2. Every link is routed with [Route] from the finished table.
//
// Connectors therefore never depend on drawing order: a link naming a slot
// that is not in the plan fails with [ErrUnknownSlot] before anything is drawn.
//
// # Units
//
// All coordinates are figure units with the origin at the bottom-left and the
// y axis pointing up. Renderers convert to pixels (100 px per unit by default).
//
// # Scaling
//
// A slot's Scale multiplies box width, box height and font size together.
// There is no independent axis scaling.
//
// # Coordinate Derivation
//
// Slot anchors usually come from a [Grid] of hand-tuned column and row
// positions plus a global vertical shift:
//
//	g := layout.Grid{Columns: []float64{1, 5.5}, Rows: []float64{8, 6.5}, Shift: -2}
//	p := g.Between(1, 0, 1) // column 1, halfway between rows 0 and 1
//
// [Bracket] builds the double-elimination top-8 plan on such a grid.
package layout
