// Package layout packs ranked terms into a canvas without overlap.
//
// # Algorithm
//
// [Engine.Place] is a greedy, largest-first spiral packer:
//
//  1. Each term's count is mapped to a font size between MinFontSize and
//     MaxFontSize (linear or logarithmic). The top term gets MaxFontSize and
//     sizes never increase down the ranking.
//  2. The term is rasterized through the [Rasterizer] capability, giving its
//     ink bounding box (and, for pixel collision, its coverage).
//  3. Candidate positions are walked along an Archimedean spiral that starts
//     at the canvas centre. A candidate is accepted when the box stays inside
//     the canvas, covers no forbidden cell of the occupancy bitmap and does
//     not collide with anything placed before it.
//  4. When the spiral is exhausted the font size shrinks by FontStep and the
//     search restarts, down to MinFontSize. A term that never fits is
//     reported in [Result.Skipped].
//  5. Accepted glyphs are written into the placement grid.
//
// Box tests use summed-area tables, so each candidate costs O(1) no matter
// how large the glyph is.
//
// # Collision modes
//
//   - [CollisionBox] (default): boxes grown by Margin may not intersect.
//     Placed bounding boxes are pairwise disjoint; glyph interiors never
//     interleave.
//   - [CollisionPixel]: only inked pixels are compared, dilated by Margin.
//     Packing is denser and small words can sit inside the counters of large
//     ones; bounding boxes may then overlap even though no ink does.
//
// # Determinism
//
// All randomness (spiral start angle, orientation choice) comes from a PCG
// generator seeded with Options.Seed. The same terms, bitmap, rasterizer and
// options always produce the same placements.
//
// A single Place call is sequential: each placement depends on all earlier
// ones. Independent calls may run concurrently as long as they do not share
// a Rasterizer that is unsafe for concurrent use.
package layout
